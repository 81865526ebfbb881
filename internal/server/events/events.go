// Package events publishes domain events (user and recipe lifecycle) to a
// RabbitMQ topic exchange.
package events

import (
	"context"
	"time"
)

// Routing keys.
const (
	UserRegistered = "user.registered"
	RecipeCreated  = "recipe.created"
	RecipeUpdated  = "recipe.updated"
	RecipeDeleted  = "recipe.deleted"
)

// Event is the JSON body of every published message.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	UserID     string    `json:"user_id"`
	RecipeID   string    `json:"recipe_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	Category   string    `json:"category,omitempty"`
}

// Publisher delivers events. Implementations are safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher drops every event; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
