package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-leave-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-leave-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-leave-go/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

// NotificationHandler streams leave request events to the toast UI.
type NotificationHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	hub        *sse.Hub
	jwtService jwt.Service
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(hub *sse.Hub, jwtService jwt.Service) NotificationHandler {
	return &notificationHandlerImpl{
		hub:        hub,
		jwtService: jwtService,
	}
}

// GetSSEToken generates a short-lived token for SSE connections. The token
// subscribes to the same id the leave endpoints record as actor.
func (h *notificationHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorID(r)
	if actorID == "" {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(actorID)
	if err != nil {
		slog.Error("Failed to generate SSE token", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream handles SSE connection for real-time notifications
func (h *notificationHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// EventSource cannot send headers, so the token travels in the query.
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	subscriberID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		response.Unauthorized(w, "Invalid token")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		response.InternalServerError(w, "Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	events, cleanup := h.hub.Subscribe(subscriberID)
	defer cleanup()

	connected, _ := json.Marshal(map[string]string{"status": "connected", "subscriber_id": subscriberID})
	fmt.Fprintf(w, "event: connected\ndata: %s\n\n", connected)
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				slog.Warn("Dropping unencodable SSE event", "event", event.Name, "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Name, data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
