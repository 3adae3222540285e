package notification

import (
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
)

// Level tells the UI how to style a toast
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Toast is the user-facing message pushed for a leave request event
type Toast struct {
	ID        string              `json:"id"`
	Event     string              `json:"event"`
	Level     Level               `json:"level"`
	Title     string              `json:"title"`
	Message   string              `json:"message"`
	Request   *leave.LeaveRequest `json:"request,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}
