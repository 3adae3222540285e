package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/config"
	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/hris-leave-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-leave-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-leave-go/internal/repository/postgresql"
	leaveService "github.com/cmlabs-hris/hris-leave-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/hris-leave-go/internal/service/notification"
	"github.com/go-chi/httplog/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-leave"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	leaveRequestRepo, employeeRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Error opening store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	hub := sse.NewHub(cfg.SSE.BufferSize)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	notifier := notificationService.NewService(hub, notificationService.Config{
		WorkerCount: cfg.SSE.WorkerCount,
		QueueSize:   cfg.SSE.QueueSize,
	})

	requestService := leaveService.NewRequestService(leaveRequestRepo, notifier)
	balanceService := leaveService.NewBalanceService(leaveRequestRepo, employeeRepo, cfg.Policies(), leaveService.NewBalanceCalculator())
	calendarService := leaveService.NewCalendarService(leaveRequestRepo)
	svc := leaveService.NewLeaveService(requestService, balanceService, calendarService)

	leaveHandler := appHTTP.NewLeaveHandler(svc)
	notificationHandler := appHTTP.NewNotificationHandler(hub, JWTService)

	router := appHTTP.NewRouter(JWTService, leaveHandler, notificationHandler, appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	notifier.Stop()
	slog.Info("Server stopped")
}

// openStore returns the repositories for the configured driver and a
// function releasing their resources.
func openStore(ctx context.Context, cfg *config.Config) (leave.LeaveRequestRepository, leave.EmployeeRepository, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		slog.Warn("Using in-memory store, data is lost on restart")
		db := memory.NewDB()
		if cfg.Database.SeedFile != "" {
			employees, err := memory.LoadEmployees(cfg.Database.SeedFile)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("seed employees: %w", err)
			}
			db.SeedEmployees(employees...)
			slog.Info("Seeded employee directory", "count", len(employees), "file", cfg.Database.SeedFile)
		} else {
			slog.Warn("No DB_MEMORY_SEED_FILE set, department filters match nothing")
		}
		return memory.NewLeaveRequestRepository(db), memory.NewEmployeeRepository(db), func() {}, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, nil, fmt.Errorf("ensure schema: %w", err)
		}
		return postgresql.NewLeaveRequestRepository(db), postgresql.NewEmployeeRepository(db), db.Close, nil
	}
}
