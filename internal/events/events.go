// Package events publishes catalog change events and consumes them to keep the
// product list cache fresh across processes.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	CategoryCreated Type = "category.created"
	CategoryUpdated Type = "category.updated"
	CategoryDeleted Type = "category.deleted"
	ProductCreated  Type = "product.created"
	ProductUpdated  Type = "product.updated"
	ProductDeleted  Type = "product.deleted"
)

type Event struct {
	EventID   string          `json:"event_id"`
	EventType Type            `json:"event_type"`
	EntityID  string          `json:"entity_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// New stamps an event with a fresh id and the current time. A nil payload is omitted.
func New(eventType Type, entityID string, payload interface{}) (Event, error) {
	e := Event{
		EventID:   uuid.New().String(),
		EventType: eventType,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Event{}, err
		}
		e.Payload = data
	}
	return e, nil
}

// AffectsProducts reports whether cached product lists may be stale. Category
// renames change the category embedded in list items.
func (e Event) AffectsProducts() bool {
	switch e.EventType {
	case CategoryUpdated, CategoryDeleted:
		return true
	}
	return strings.HasPrefix(string(e.EventType), "product.")
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
