package notification

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/domain/notification"
	leaveService "github.com/cmlabs-hris/hris-leave-go/internal/service/leave"
	"github.com/google/uuid"
)

// Broadcaster fans a named event out to recipients; *sse.Hub implements it.
type Broadcaster interface {
	PublishToMany(recipientIDs []string, name string, data interface{})
}

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type job struct {
	recipients []string
	event      string
	data       interface{}
}

// Service turns leave request events into toasts off the request path.
type Service struct {
	broadcaster Broadcaster
	config      Config
	now         func() time.Time

	queue    chan job
	wg       sync.WaitGroup
	stopCh   chan struct{}
	stopOnce sync.Once

	// mu orders enqueues against Stop: once closed is set nothing else
	// enters the queue.
	mu     sync.RWMutex
	closed bool
}

// NewService creates a new notification service with background workers
func NewService(broadcaster Broadcaster, cfg Config) *Service {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1000
	}

	s := &Service{
		broadcaster: broadcaster,
		config:      cfg,
		now:         time.Now,
		queue:       make(chan job, cfg.QueueSize),
		stopCh:      make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

// PublishToMany queues an event. When the queue is full or the service is
// stopped the toast is delivered on the caller's goroutine.
func (s *Service) PublishToMany(recipientIDs []string, event string, data interface{}) {
	j := job{
		recipients: append([]string(nil), recipientIDs...),
		event:      event,
		data:       data,
	}

	if !s.enqueue(j) {
		s.deliver(j)
	}
}

// enqueue reports false when the job must be delivered inline.
func (s *Service) enqueue(j job) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.queue <- j:
		return true
	default:
		slog.Warn("Notification queue full, delivering inline", "event", j.event)
		return false
	}
}

func (s *Service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case j := <-s.queue:
			s.deliver(j)
		case <-s.stopCh:
			s.drain()
			slog.Debug("Notification worker stopped", "worker", id)
			return
		}
	}
}

func (s *Service) drain() {
	for {
		select {
		case j := <-s.queue:
			s.deliver(j)
		default:
			return
		}
	}
}

func (s *Service) deliver(j job) {
	s.broadcaster.PublishToMany(j.recipients, j.event, s.Toast(j.event, j.data))
}

// Stop delivers everything still queued and stops the workers
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()

		close(s.stopCh)
		s.wg.Wait()
		s.drain()
		slog.Info("Notification service stopped")
	})
}

// Toast builds the message shown for event. Unknown events get a generic
// info toast.
func (s *Service) Toast(event string, data interface{}) notification.Toast {
	toast := notification.Toast{
		ID:        uuid.New().String(),
		Event:     event,
		Level:     notification.LevelInfo,
		Title:     "Leave request",
		CreatedAt: s.now().UTC(),
	}

	var request *leave.LeaveRequest
	switch v := data.(type) {
	case leave.LeaveRequest:
		request = &v
	case *leave.LeaveRequest:
		request = v
	}

	summary := "A leave request"
	if request != nil {
		toast.Request = request
		summary = describe(*request)
	}

	switch event {
	case leaveService.EventLeaveRequestCreated:
		toast.Title = "Leave request submitted"
		toast.Message = summary + " is awaiting approval."
	case leaveService.EventLeaveRequestUpdated:
		toast.Title = "Leave request updated"
		toast.Message = summary + " was updated."
	case leaveService.EventLeaveRequestDeleted:
		toast.Title = "Leave request deleted"
		toast.Level = notification.LevelWarning
		toast.Message = summary + " was deleted."
	case leaveService.EventLeaveRequestApproved:
		toast.Title = "Leave request approved"
		toast.Level = notification.LevelSuccess
		toast.Message = summary + " was approved."
	case leaveService.EventLeaveRequestRejected:
		toast.Title = "Leave request rejected"
		toast.Level = notification.LevelWarning
		toast.Message = summary + " was rejected."
		if request != nil && request.RejectionReason != nil {
			toast.Message += " Reason: " + *request.RejectionReason
		}
	case leaveService.EventLeaveRequestCanceled:
		toast.Title = "Leave request canceled"
		toast.Message = summary + " was canceled."
	default:
		toast.Message = summary + " changed."
	}

	return toast
}

func describe(r leave.LeaveRequest) string {
	who := r.EmployeeID
	if r.EmployeeName != nil && *r.EmployeeName != "" {
		who = *r.EmployeeName
	}

	days := "days"
	if r.DurationDays == 1 {
		days = "day"
	}

	if r.StartDate.Equal(r.EndDate) {
		return fmt.Sprintf("%s's %s leave on %s (%d %s)", who, r.Type, r.StartDate, r.DurationDays, days)
	}
	return fmt.Sprintf("%s's %s leave from %s to %s (%d %s)", who, r.Type, r.StartDate, r.EndDate, r.DurationDays, days)
}
