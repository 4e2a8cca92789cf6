package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		received = append(received, e)
		return nil
	})
	d.Subscribe(EventTicketReopened, func(_ context.Context, e Event) error {
		t.Fatal("handler for a different type must not fire")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "id-1"})
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "id-1", received[0].TicketID)
}

func TestDispatcherSwallowsHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	calls := 0
	d.Subscribe(EventHistoryCorrected, func(context.Context, Event) error {
		calls++
		return errors.New("delivery failed")
	})
	d.Subscribe(EventHistoryCorrected, func(context.Context, Event) error {
		calls++
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventHistoryCorrected})
	assert.NoError(t, err, "handler errors never fail the publish")
	assert.Equal(t, 2, calls, "a failing handler does not stop later ones")
}
