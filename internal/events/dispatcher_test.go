package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishFillsIDAndTimestamp(t *testing.T) {
	d := NewInMemoryDispatcher()

	var got Event
	d.Subscribe(EventSignedIn, func(ctx context.Context, e Event) error {
		got = e
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSignedIn}))

	assert.NotEmpty(t, got.ID)
	assert.False(t, got.Timestamp.IsZero())
}

func TestPublishReachesAllHandlersDespiteErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventSessionExpired, func(ctx context.Context, e Event) error {
		calls++
		return errors.New("handler failure")
	})
	d.Subscribe(EventSessionExpired, func(ctx context.Context, e Event) error {
		calls++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSessionExpired}))
	assert.Equal(t, 2, calls)
}

func TestPublishIgnoresUnsubscribedTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventSignedOut, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventSignedIn}))
	assert.False(t, called)
}
