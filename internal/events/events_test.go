package events

import (
	"sync"
	"testing"
	"time"
)

// TestEmitReachesAllHandlers verifies every registered handler receives the
// payload.
func TestEmitReachesAllHandlers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	got := make([]interface{}, 0, 2)

	handler := func(data interface{}) {
		mu.Lock()
		got = append(got, data)
		mu.Unlock()
		wg.Done()
	}
	bus.On("deals.created", handler)
	bus.On("deals.created", handler)

	bus.Emit("deals.created", "payload")

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handlers did not run")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 || got[0] != "payload" || got[1] != "payload" {
		t.Errorf("got = %v, want payload twice", got)
	}
}

// TestEmitUnknownEventIsNoop verifies emitting with no subscribers does not
// panic or block.
func TestEmitUnknownEventIsNoop(t *testing.T) {
	bus := NewBus()
	bus.Emit("nobody.listening", 42)
}

// TestPanickingHandlerDoesNotStopOthers verifies a bad subscriber cannot
// break delivery to the rest.
func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)
	bus.On("task.overdue", func(interface{}) { panic("boom") })
	bus.On("task.overdue", func(interface{}) { wg.Done() })

	bus.Emit("task.overdue", nil)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("surviving handler did not run")
	}
}
