package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "channel closed unexpectedly")
		return event
	case <-time.After(200 * time.Millisecond):
		require.Fail(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx := context.Background()
	ch1 := broker.Subscribe(ctx)
	ch2 := broker.Subscribe(ctx)
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(ChangedEvent, 42)

	for _, ch := range []<-chan Event[int]{ch1, ch2} {
		event := receive(t, ch)
		require.Equal(t, 42, event.Payload)
		require.Equal(t, ChangedEvent, event.Type)
		require.False(t, event.Timestamp.IsZero())
	}
}

func TestBroker_ContextCancellationClosesChannel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 0, broker.SubscriberCount())
}

func TestBroker_FullSubscriberDropsEvents(t *testing.T) {
	broker := newBroker[int](1, false)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())
	broker.Publish(ChangedEvent, 1)
	broker.Publish(ChangedEvent, 2)

	require.Equal(t, 1, receive(t, ch).Payload)
	select {
	case <-ch:
		require.Fail(t, "second event should have been dropped")
	default:
	}
}

func TestBroker_CloseIsIdempotent(t *testing.T) {
	broker := NewBroker[int]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()

	_, ok := <-ch
	require.False(t, ok)

	late := broker.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribing after close yields a closed channel")
	broker.Publish(ChangedEvent, 1)
}

func TestStateBroker_ReplaysLastEvent(t *testing.T) {
	broker := NewStateBroker[string]()
	defer broker.Close()

	_, ok := broker.Last()
	require.False(t, ok)

	broker.Publish(ChangedEvent, "loading")
	broker.Publish(ChangedEvent, "success")

	last, ok := broker.Last()
	require.True(t, ok)
	require.Equal(t, "success", last.Payload)

	ch := broker.Subscribe(context.Background())
	require.Equal(t, "success", receive(t, ch).Payload)
}

func TestListenCmd(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)
	broker.Publish(LoggedEvent, "hello")

	msg := listener.Listen()()
	event, ok := msg.(Event[string])
	require.True(t, ok)
	require.Equal(t, "hello", event.Payload)
	require.Equal(t, LoggedEvent, event.Type)

	cancel()
	require.Nil(t, listener.Listen()())
}

func TestListen_NilListener(t *testing.T) {
	var l *ContinuousListener[int]
	require.Nil(t, l.Listen())
}
