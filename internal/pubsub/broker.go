package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBufferSize = 32

// Broker fans events out to every subscriber. Slow subscribers lose events
// rather than block the publisher.
//
// A broker created with NewStateBroker remembers the last event and replays
// it to each new subscriber, so observers that attach late still see the
// current state.
type Broker[T any] struct {
	mu         sync.RWMutex
	subs       map[chan Event[T]]struct{}
	done       chan struct{}
	bufferSize int

	retain bool
	last   *Event[T]
}

// NewBroker creates a broker with the default buffer size.
func NewBroker[T any]() *Broker[T] {
	return newBroker[T](defaultBufferSize, false)
}

// NewStateBroker creates a broker that replays the latest event on subscribe.
func NewStateBroker[T any]() *Broker[T] {
	return newBroker[T](defaultBufferSize, true)
}

func newBroker[T any](size int, retain bool) *Broker[T] {
	return &Broker[T]{
		subs:       make(map[chan Event[T]]struct{}),
		done:       make(chan struct{}),
		bufferSize: size,
		retain:     retain,
	}
}

// Subscribe registers a new subscriber. The returned channel is closed when
// ctx is cancelled or the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	sub := make(chan Event[T], b.bufferSize)
	if b.retain && b.last != nil {
		sub <- *b.last
	}
	b.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[sub]; ok {
			delete(b.subs, sub)
			close(sub)
		}
	}()

	return sub
}

// Publish delivers payload to all current subscribers without blocking.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	event := Event[T]{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	if b.retain {
		b.mu.Lock()
		b.last = &event
		b.mu.Unlock()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed() {
		return
	}
	for sub := range b.subs {
		select {
		case sub <- event:
		default:
		}
	}
}

// Last returns the most recent event of a state broker.
func (b *Broker[T]) Last() (Event[T], bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.last == nil {
		return Event[T]{}, false
	}
	return *b.last, true
}

// Close closes every subscriber channel. Publishing after Close is a no-op.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed() {
		return
	}
	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = map[chan Event[T]]struct{}{}
}

// SubscriberCount returns the number of live subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// closed must be called with b.mu held.
func (b *Broker[T]) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}
