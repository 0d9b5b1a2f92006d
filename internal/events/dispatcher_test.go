package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []string
	d.Subscribe(EventSwapSubmitted, func(_ context.Context, e Event) error {
		seen = append(seen, "first:"+e.ID)
		return nil
	})
	d.Subscribe(EventSwapSubmitted, func(_ context.Context, e Event) error {
		seen = append(seen, "second:"+e.ID)
		return nil
	})
	d.Subscribe(EventSwapResolved, func(_ context.Context, e Event) error {
		t.Error("handler for a different event type invoked")
		return nil
	})

	if err := d.Publish(context.Background(), Event{ID: "e1", Type: EventSwapSubmitted}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(seen) != 2 || seen[0] != "first:e1" || seen[1] != "second:e1" {
		t.Fatalf("unexpected handler invocations: %v", seen)
	}
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventUserBanned, func(context.Context, Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventUserBanned, func(context.Context, Event) error {
		called = true
		return nil
	})

	if err := d.Publish(context.Background(), Event{Type: EventUserBanned}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !called {
		t.Fatal("later handler skipped after an earlier failure")
	}
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	if err := d.Publish(context.Background(), Event{Type: EventAnnouncementPosted}); err != nil {
		t.Fatalf("publish without subscribers: %v", err)
	}
}
