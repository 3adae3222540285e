package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-leave-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var persistenceErr *leave.PersistenceError

	switch {
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, leave.ErrLeaveRequestNotFound.Error())
	case errors.Is(err, leave.ErrEmployeeNotFound):
		NotFound(w, leave.ErrEmployeeNotFound.Error())

	case errors.Is(err, leave.ErrInvalidDate):
		ValidationError(w, map[string]string{"date": err.Error()})
	case errors.Is(err, leave.ErrInvalidDateRange):
		ValidationError(w, map[string]string{"end_date": err.Error()})

	case errors.Is(err, leave.ErrRequestNotEditable):
		InvalidTransition(w, leave.ErrRequestNotEditable.Error())
	case errors.Is(err, leave.ErrInvalidTransition):
		InvalidTransition(w, err.Error())

	case errors.As(err, &persistenceErr):
		slog.Error("Persistence failure", "op", persistenceErr.Op, "error", persistenceErr.Err)
		ServiceUnavailable(w, "Leave data is temporarily unavailable")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
