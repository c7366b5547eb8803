package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	EventJobsUpdated         = "jobs_updated"
	EventCVsUpdated          = "cvs_updated"
	EventRequirementsUpdated = "requirements_updated"
)

type Event struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Action    string `json:"action"`
	Timestamp string `json:"timestamp"`
}

// Notify broadcasts a change event; a nil hub ignores it.
func (h *Hub) Notify(eventType, action string, id uuid.UUID) {
	if h == nil {
		return
	}
	b, err := json.Marshal(Event{
		Type:      eventType,
		ID:        id.String(),
		Action:    action,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		h.logger.Warn("ws event encode failed", zap.Error(err))
		return
	}
	h.Broadcast(b)
}
