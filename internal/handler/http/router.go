package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-leave-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

func NewRouter(JWTService jwt.Service, leaveHandler LeaveHandler, notificationHandler NotificationHandler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Authenticated by its own short-lived query token
		r.Get("/notifications/stream", notificationHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Get("/notifications/sse-token", notificationHandler.GetSSEToken)

			r.Route("/leave", func(r chi.Router) {
				r.Route("/requests", func(r chi.Router) {
					r.Get("/", leaveHandler.ListRequests)
					r.Post("/", leaveHandler.CreateRequest)
					r.Get("/my", leaveHandler.GetMyRequests)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", leaveHandler.GetRequest)
						r.Put("/", leaveHandler.UpdateRequest)
						r.Delete("/", leaveHandler.DeleteRequest)
						r.Post("/approve", leaveHandler.ApproveRequest)
						r.Post("/reject", leaveHandler.RejectRequest)
						r.Post("/cancel", leaveHandler.CancelRequest)
					})
				})

				r.Get("/balances", leaveHandler.GetBalances)
				r.Get("/policies", leaveHandler.ListPolicies)

				r.Route("/calendar", func(r chi.Router) {
					r.Get("/day", leaveHandler.GetCalendarDay)
					r.Get("/month", leaveHandler.GetCalendarMonth)
					r.Get("/month/export", leaveHandler.ExportCalendarMonth)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	return r
}
