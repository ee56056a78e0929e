package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types published after a successful write.
const (
	CompanyCreated = "company.created"
	CompanyUpdated = "company.updated"
	UserCreated    = "user.created"
	UserUpdated    = "user.updated"
	TaskCreated    = "task.created"
	TaskUpdated    = "task.updated"
)

// Event is the envelope written to the stream. Payload is the entity's
// response shape, never a stored row.
type Event struct {
	Type       string      `json:"type"`
	EntityID   uuid.UUID   `json:"entity_id"`
	ActorID    *uuid.UUID  `json:"actor_id,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

func New(eventType string, entityID uuid.UUID, payload interface{}) Event {
	return Event{
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers domain events. Callers treat delivery as best effort.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
