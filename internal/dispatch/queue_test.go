package dispatch

import (
	"sync"
	"testing"

	"github.com/cxterm/blockengine/internal/block"
)

func TestNewOutbox(t *testing.T) {
	tests := []struct {
		name            string
		maxSize         int
		expectedMaxSize int
	}{
		{name: "positive max size", maxSize: 50, expectedMaxSize: 50},
		{name: "zero uses default", maxSize: 0, expectedMaxSize: DefaultMaxQueued},
		{name: "negative uses default", maxSize: -10, expectedMaxSize: DefaultMaxQueued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOutbox(tt.maxSize)
			if o == nil {
				t.Fatal("NewOutbox returned nil")
			}
			if o.maxSize != tt.expectedMaxSize {
				t.Errorf("expected maxSize %d, got %d", tt.expectedMaxSize, o.maxSize)
			}
			if o.Len() != 0 {
				t.Errorf("new outbox should be empty, got len %d", o.Len())
			}
		})
	}
}

func TestOutbox_FIFO(t *testing.T) {
	o := NewOutbox(10)

	reqs := []Request{
		{Kind: KindExplain, BlockID: block.ID(1), Command: "git status"},
		{Kind: KindSuggest, Query: "how to grep recursively"},
		{Kind: KindAgent, AgentName: "reviewer", Command: "lint"},
	}
	for _, r := range reqs {
		o.Submit(r)
	}

	if o.Len() != 3 {
		t.Fatalf("expected len 3, got %d", o.Len())
	}

	for i, want := range reqs {
		got, ok := o.Dequeue()
		if !ok {
			t.Fatalf("Dequeue %d returned not ok", i)
		}
		if got.Kind != want.Kind || got.Command != want.Command || got.Query != want.Query {
			t.Errorf("Dequeue %d: got %+v, want fields from %+v", i, got, want)
		}
		if got.ID == "" {
			t.Errorf("Dequeue %d: expected an assigned ID", i)
		}
	}

	if o.Len() != 0 {
		t.Errorf("outbox should be empty after dequeuing all, got len %d", o.Len())
	}
}

func TestOutbox_SubmitAssignsIDWhenUnset(t *testing.T) {
	o := NewOutbox(10)
	o.Submit(Request{Kind: KindExplain})

	got, ok := o.Dequeue()
	if !ok {
		t.Fatal("expected a request")
	}
	if got.ID == "" {
		t.Error("expected Submit to assign a non-empty ID")
	}
}

func TestOutbox_SubmitPreservesCallerID(t *testing.T) {
	o := NewOutbox(10)
	o.Submit(Request{ID: "caller-assigned", Kind: KindExplain})

	got, _ := o.Dequeue()
	if got.ID != "caller-assigned" {
		t.Errorf("expected caller-assigned ID to survive, got %q", got.ID)
	}
}

func TestOutbox_FullDiscardsRatherThanBlocksOrEvicts(t *testing.T) {
	maxSize := 2
	o := NewOutbox(maxSize)

	o.Submit(Request{ID: "a", Kind: KindExplain})
	o.Submit(Request{ID: "b", Kind: KindExplain})
	o.Submit(Request{ID: "overflow", Kind: KindExplain})

	if o.Len() != maxSize {
		t.Fatalf("expected len to stay at cap %d, got %d", maxSize, o.Len())
	}

	first, _ := o.Peek()
	if first.ID != "a" {
		t.Errorf("expected oldest request to survive discard of overflow, got %q", first.ID)
	}
}

func TestOutbox_EmptyDequeue(t *testing.T) {
	o := NewOutbox(10)

	req, ok := o.Dequeue()
	if ok {
		t.Error("Dequeue from empty outbox should return false")
	}
	if req.ID != "" {
		t.Error("Dequeue from empty outbox should return zero value")
	}
}

func TestOutbox_Peek(t *testing.T) {
	o := NewOutbox(10)

	_, ok := o.Peek()
	if ok {
		t.Error("Peek on empty outbox should return false")
	}

	o.Submit(Request{ID: "first", Kind: KindExplain})
	o.Submit(Request{ID: "second", Kind: KindExplain})

	got, ok := o.Peek()
	if !ok || got.ID != "first" {
		t.Errorf("Peek should return first item, got %+v", got)
	}
	if o.Len() != 2 {
		t.Error("Peek should not remove items")
	}
}

func TestOutbox_Drain(t *testing.T) {
	o := NewOutbox(10)

	result := o.Drain()
	if len(result) != 0 {
		t.Error("Drain on empty outbox should return empty slice")
	}

	o.Submit(Request{ID: "1", Kind: KindExplain})
	o.Submit(Request{ID: "2", Kind: KindSuggest})
	o.Submit(Request{ID: "3", Kind: KindAgent})

	result = o.Drain()
	if len(result) != 3 {
		t.Fatalf("expected 3 drained requests, got %d", len(result))
	}
	if o.Len() != 0 {
		t.Errorf("outbox should be empty after drain, got len %d", o.Len())
	}
}

func TestOutbox_DrainReturnsIndependentSlice(t *testing.T) {
	o := NewOutbox(10)
	o.Submit(Request{ID: "1", Kind: KindExplain})
	o.Submit(Request{ID: "2", Kind: KindExplain})

	drained := o.Drain()
	drained[0].ID = "modified"

	o.Submit(Request{ID: "3", Kind: KindExplain})
	got, _ := o.Dequeue()
	if got.ID != "3" {
		t.Error("outbox internal state was corrupted by drain result modification")
	}
}

func TestOutbox_ConcurrentSubmitAndDequeue(t *testing.T) {
	o := NewOutbox(1000)

	const numGoroutines = 10
	const numOpsPerGoroutine = 100

	var wg sync.WaitGroup
	wg.Add(numGoroutines * 2)

	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				o.Submit(Request{Kind: KindExplain})
			}
		}()
	}
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < numOpsPerGoroutine; j++ {
				o.Dequeue()
			}
		}()
	}

	wg.Wait()

	if o.Len() < 0 {
		t.Errorf("outbox length should be non-negative, got %d", o.Len())
	}
}
