package events

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeSessionStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	bus.Publish(NewSessionStartedEvent("test-session", 40, 30, 7, 5))

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeSessionStarted, receivedEvent.Type())
	assert.Equal(t, "test-session", receivedEvent.SessionID())
	assert.WithinDuration(t, time.Now(), receivedEvent.Timestamp(), time.Second)
}

func TestEventBusMultipleHandlers(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var order []int
	bus.SubscribeFunc(TypeTurnStarted, func(e Event) { order = append(order, 1) })
	bus.SubscribeFunc(TypeTurnStarted, func(e Event) { order = append(order, 2) })

	bus.Publish(NewTurnStartedEvent("test-session", 1))

	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 2, bus.GetFuncHandlerCount(TypeTurnStarted))
}

func TestEventBusHandlerIDsAreUnique(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	ids := map[string]bool{}
	for i := 0; i < 20; i++ {
		ids[bus.SubscribeFunc(TypeTurnEnded, func(Event) {})] = true
	}
	assert.Len(t, ids, 20)
}

func TestEventBusUnsubscribeFunc(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	calls := 0
	id := bus.SubscribeFunc(TypeTurnEnded, func(Event) { calls++ })
	bus.Publish(NewTurnEndedEvent("s", 1, 0, 0))
	bus.Unsubscribe(id)
	bus.Publish(NewTurnEndedEvent("s", 2, 0, 0))

	assert.Equal(t, 1, calls)
	assert.Zero(t, bus.GetFuncHandlerCount(TypeTurnEnded))
}

func TestEventBusSubscriber(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	rec := NewRecorder("test-subscriber", TypeSessionStarted, TypeSessionEnded)
	bus.Subscribe(rec)

	bus.Publish(NewSessionStartedEvent("test-session", 10, 10, 1, 2))
	bus.Publish(NewTurnStartedEvent("test-session", 1))
	bus.Publish(NewSessionEndedEvent("test-session", "sunk", 100, time.Minute))

	got := rec.Events()
	require.Len(t, got, 2)
	assert.Equal(t, TypeSessionStarted, got[0].Type())
	assert.Equal(t, TypeSessionEnded, got[1].Type())

	bus.Unsubscribe(rec.ID())
	bus.Publish(NewSessionStartedEvent("test-session", 10, 10, 1, 2))
	assert.Len(t, rec.Events(), 2)
	assert.Zero(t, bus.GetSubscriberCount())
}

func TestEventBusSubscribersNotifiedInOrder(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	var order []string
	for _, id := range []string{"c", "a", "b"} {
		id := id
		bus.Subscribe(&funcSubscriber{id: id, fn: func(Event) { order = append(order, id) }})
	}
	bus.Publish(NewTurnStartedEvent("s", 1))
	assert.Equal(t, []string{"c", "a", "b"}, order)

	// resubscribing moves the subscriber to the end
	bus.Subscribe(&funcSubscriber{id: "c", fn: func(Event) { order = append(order, "c2") }})
	order = nil
	bus.Publish(NewTurnStartedEvent("s", 2))
	assert.Equal(t, []string{"a", "b", "c2"}, order)
	assert.Equal(t, 3, bus.GetSubscriberCount())
}

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := NewEventBus(zerolog.Nop())

	bus.Subscribe(&funcSubscriber{id: "bad", fn: func(Event) { panic("boom") }})
	rec := NewRecorder("good")
	bus.Subscribe(rec)
	bus.SubscribeFunc(TypeEntityDied, func(Event) { panic("boom") })

	handled := false
	bus.SubscribeFunc(TypeEntityDied, func(Event) { handled = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewEntityDiedEvent("s", 3, 2, "Serpent", 1, 4, 4))
	})
	assert.Len(t, rec.Events(), 1)
	assert.True(t, handled)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder("rec")
	assert.True(t, rec.InterestedIn("anything"))

	rec.HandleEvent(NewTurnStartedEvent("s", 1))
	rec.HandleEvent(NewActionRejectedEvent("s", 1, 1, "move", "blocked", "blocked by terrain"))
	rec.HandleEvent(NewTurnStartedEvent("s", 2))

	assert.Len(t, rec.Events(), 3)
	assert.Len(t, rec.OfType(TypeTurnStarted), 2)
	rejected := rec.OfType(TypeActionRejected)
	require.Len(t, rejected, 1)
	assert.Equal(t, "blocked", rejected[0].(*ActionRejectedEvent).Code)

	rec.Reset()
	assert.Empty(t, rec.Events())
}

type funcSubscriber struct {
	id string
	fn func(Event)
}

func (f *funcSubscriber) ID() string               { return f.id }
func (f *funcSubscriber) HandleEvent(e Event)      { f.fn(e) }
func (f *funcSubscriber) InterestedIn(string) bool { return true }
