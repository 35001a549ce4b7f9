package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fixserve_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

type countingHandler struct {
	mu    sync.Mutex
	calls int
	done  chan struct{}
	err   error
}

func (h *countingHandler) Handle(_ context.Context, _ Event) error {
	h.mu.Lock()
	h.calls++
	h.mu.Unlock()
	if h.done != nil {
		h.done <- struct{}{}
	}
	return h.err
}

func (h *countingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	handler := &countingHandler{done: make(chan struct{}, 1)}
	bus.Subscribe("orders.test", handler)

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "orders.test"})

	select {
	case <-handler.done:
	case <-time.After(time.Second):
		t.Fatal("handler not invoked within 1s")
	}
	if handler.count() != 1 {
		t.Fatalf("calls = %d, want 1", handler.count())
	}
}

func TestPublishSkipsOtherEvents(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	handler := &countingHandler{}
	bus.Subscribe("orders.test", handler)

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "orders.other"}); err != nil {
		t.Fatalf("PublishSync: %v", err)
	}
	if handler.count() != 0 {
		t.Fatalf("calls = %d, want 0", handler.count())
	}
}

func TestPublishSyncJoinsErrors(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	failing := &countingHandler{err: errors.New("delivery failed")}
	ok := &countingHandler{}
	bus.Subscribe("orders.test", failing)
	bus.Subscribe("orders.test", ok)

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "orders.test"})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if ok.count() != 1 {
		t.Fatal("later handler must still run after an earlier failure")
	}
}

func TestPublishSurvivesCanceledRequestContext(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	done := make(chan struct{}, 1)
	bus.Subscribe("orders.test", HandlerFunc(func(ctx context.Context, _ Event) error {
		if ctx.Err() != nil {
			t.Errorf("handler context canceled: %v", ctx.Err())
		}
		done <- struct{}{}
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent(), name: "orders.test"})
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler not invoked within 1s")
	}
}
