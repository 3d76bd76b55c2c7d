// Package dispatch is the fire-and-forget outbox for AI/agent requests
// raised by the "ai;explain", "ai;suggest" and "agent" OSC sequences
// (AIExplain, AISuggest, AgentRequest). The core never awaits a response: Submit enqueues and
// returns immediately, and a full outbox logs and discards rather than
// blocking the UI thread or evicting an older request.
package dispatch

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cxterm/blockengine/internal/block"
	"github.com/cxterm/blockengine/internal/log"
)

// DefaultMaxQueued is the default maximum number of requests an Outbox
// holds before new submissions are discarded.
const DefaultMaxQueued = 100

// Kind identifies what triggered a Request.
type Kind int

const (
	// KindExplain is raised by an "ai;explain" extension sequence.
	KindExplain Kind = iota
	// KindSuggest is raised by an "ai;suggest" extension sequence.
	KindSuggest
	// KindAgent is raised by an "agent" extension sequence.
	KindAgent
)

// Request is one outbound item destined for an external AI/agent
// collaborator. The core never inspects a response; delivery and reply
// handling belong entirely to the terminal-window host.
type Request struct {
	ID         string
	Kind       Kind
	BlockID    block.ID
	Command    string // text to explain for Explain; command for KindAgent
	Query      string // free-text query for Suggest
	AgentName  string // target agent name for KindAgent
	EnqueuedAt time.Time
}

// Outbox is a thread-safe FIFO queue of pending dispatch requests.
type Outbox struct {
	entries []Request
	mu      sync.Mutex
	maxSize int
}

// NewOutbox creates an Outbox with the given capacity. maxSize <= 0 uses
// DefaultMaxQueued.
func NewOutbox(maxSize int) *Outbox {
	if maxSize <= 0 {
		maxSize = DefaultMaxQueued
	}
	return &Outbox{
		entries: make([]Request, 0),
		maxSize: maxSize,
	}
}

// Submit enqueues req, assigning an ID if unset. If the outbox is at
// capacity the request is logged and discarded — Submit never blocks and
// never returns an error, matching the core's fire-and-forget dispatch
// model (see §7: never awaited).
func (o *Outbox) Submit(req Request) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.EnqueuedAt.IsZero() {
		req.EnqueuedAt = time.Now()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.entries) >= o.maxSize {
		log.Warn(log.CatDispatch, "outbox full, discarding request", "id", req.ID, "kind", req.Kind, "block_id", req.BlockID)
		return
	}

	o.entries = append(o.entries, req)
	log.Debug(log.CatDispatch, "request queued", "id", req.ID, "kind", req.Kind, "block_id", req.BlockID)
}

// Dequeue removes and returns the request at the front of the outbox.
// Returns (zero value, false) if the outbox is empty.
func (o *Outbox) Dequeue() (Request, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.entries) == 0 {
		return Request{}, false
	}

	req := o.entries[0]
	o.entries = o.entries[1:]
	return req, true
}

// Len returns the current number of queued requests.
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	return len(o.entries)
}

// Peek returns the request at the front of the outbox without removing it.
func (o *Outbox) Peek() (Request, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.entries) == 0 {
		return Request{}, false
	}

	return o.entries[0], true
}

// Drain removes and returns every queued request, leaving the outbox empty.
func (o *Outbox) Drain() []Request {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.entries) == 0 {
		return []Request{}
	}

	result := o.entries
	o.entries = make([]Request, 0)
	return result
}
