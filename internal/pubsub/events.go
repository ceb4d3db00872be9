// Package pubsub provides a small generic publish/subscribe broker and the
// glue needed to feed its events into a Bubble Tea update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType labels what happened to the payload.
type EventType string

const (
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
	// ChangedEvent carries the new value of an observed piece of state.
	ChangedEvent EventType = "changed"
)

// Event is a published payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes typed payloads.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
