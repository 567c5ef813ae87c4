package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type signalRecordedStub struct {
	BaseEvent
	prospectID string
}

func (e signalRecordedStub) EventName() string { return "signals.recorded" }

func TestPublish_DeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	bus.Subscribe("signals.recorded", HandlerFunc(func(_ context.Context, e Event) error {
		mu.Lock()
		got = append(got, e.(signalRecordedStub).prospectID)
		mu.Unlock()
		close(done)
		return nil
	}))

	bus.Publish(context.Background(), signalRecordedStub{BaseEvent: NewBaseEvent(), prospectID: "p-1"})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler was never invoked")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "p-1" {
		t.Fatalf("expected one delivery for p-1, got %v", got)
	}
}

func TestPublish_IgnoresUnsubscribedNames(t *testing.T) {
	bus := NewInMemoryBus(nil)

	bus.Subscribe("prospects.stage.changed", HandlerFunc(func(context.Context, Event) error {
		t.Error("handler for another event name must not fire")
		return nil
	}))

	bus.Publish(context.Background(), signalRecordedStub{BaseEvent: NewBaseEvent()})
	time.Sleep(50 * time.Millisecond)
}

func TestPublishSync_CollectsHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)

	bus.Subscribe("signals.recorded", HandlerFunc(func(context.Context, Event) error {
		return errors.New("smtp unreachable")
	}))
	bus.Subscribe("signals.recorded", HandlerFunc(func(context.Context, Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), signalRecordedStub{BaseEvent: NewBaseEvent()})
	if err == nil {
		t.Fatal("expected the failing handler's error to surface")
	}
}
