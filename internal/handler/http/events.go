package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/sse"
)

const keepaliveInterval = 30 * time.Second

// Subscriber is the part of the SSE hub the stream handler needs.
type Subscriber interface {
	Subscribe(userID string) (<-chan sse.Event, func())
	SubscriberCount(userID string) int
}

type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

type EventHandler interface {
	GetSSEToken(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type eventHandlerImpl struct {
	jwtService jwt.Service
	hub        Subscriber
}

func NewEventHandler(jwtService jwt.Service, hub Subscriber) EventHandler {
	return &eventHandlerImpl{
		jwtService: jwtService,
		hub:        hub,
	}
}

// GetSSEToken generates a short-lived token for SSE connections
func (h *eventHandlerImpl) GetSSEToken(w http.ResponseWriter, r *http.Request) {
	userID, err := jwt.UserIDFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(userID)
	if err != nil {
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, SSETokenResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Stream pushes snapshot and task events to one user
func (h *eventHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		response.Unauthorized(w, "Missing token")
		return
	}

	userID, err := h.jwtService.ValidateSSEToken(tokenStr)
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

	events, cleanup := h.hub.Subscribe(userID)
	defer func() {
		cleanup()
		slog.Debug("SSE stream closed", "user_id", userID, "streams", h.hub.SubscriberCount(userID))
	}()
	slog.Debug("SSE stream opened", "user_id", userID, "streams", h.hub.SubscriberCount(userID))

	writeEvent(w, "connected", map[string]string{"status": "connected", "user_id": userID})
	flusher.Flush()

	keepalive := time.NewTicker(keepaliveInterval)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if writeEvent(w, event.Event, event.Data) {
				flusher.Flush()
			}

		case <-keepalive.C:
			writeEvent(w, sse.EventPing, map[string]int64{"timestamp": time.Now().Unix()})
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeEvent(w http.ResponseWriter, name string, data interface{}) bool {
	payload, err := json.Marshal(data)
	if err != nil {
		return false
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, payload)
	return true
}
