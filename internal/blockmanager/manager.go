// Package blockmanager owns the block collection for a single terminal
// pane: lifecycle transitions, eviction, search, and user-triggered
// actions. The manager never fails at its public surface — unknown IDs
// simply produce zero values, matching the core's infallible-by-design
// error policy.
package blockmanager

import (
	"strings"

	"github.com/cxterm/blockengine/internal/block"
	"github.com/cxterm/blockengine/internal/log"
	"github.com/cxterm/blockengine/internal/pubsub"
)

// DefaultMaxBlocks is the soft cap on blocks retained per pane.
const DefaultMaxBlocks = 1000

// EventKind identifies the kind of lifecycle event published by a Manager.
type EventKind string

const (
	EventBlockStarted     EventKind = "block_started"
	EventBlockCompleted   EventKind = "block_completed"
	EventBlockInterrupted EventKind = "block_interrupted"
	EventBlockEvicted     EventKind = "block_evicted"
	EventBlockDeleted     EventKind = "block_deleted"
	EventBlockChanged     EventKind = "block_changed"
)

// BlockEvent is published on the Manager's broker whenever a block's
// lifecycle or user-visible state changes. Payload is a value snapshot
// so subscribers can never mutate manager-owned state.
type BlockEvent struct {
	Kind  EventKind
	Block block.Block
}

// Action is a user-triggered operation on a single block.
type Action int

const (
	ActionToggleCollapse Action = iota
	ActionCopyCommand
	ActionCopyOutput
	ActionCopyAll
	ActionShare
	ActionRerun
	ActionEditAndRun
	ActionExplain
	ActionTogglePin
	ActionAddNote
	ActionAddTag
	ActionDelete
)

// ActionResult is what executing an Action yields for the caller to act on.
type ActionResult struct {
	Kind             ActionResultKind
	Text             string // CopyToClipboard payload, ExecuteCommand/EditCommand/SendToAI command text
	RequiresTerminal bool   // true for CopyOutput/CopyAll/Share: caller must slice scrollback itself
}

// ActionResultKind discriminates the ActionResult's meaning.
type ActionResultKind int

const (
	ResultStateChanged ActionResultKind = iota
	ResultCopyToClipboard
	ResultNeedsTerminalData
	ResultExecuteCommand
	ResultEditCommand
	ResultSendToAI
	ResultDeleted
)

// Stats summarises the manager's block collection.
type Stats struct {
	Total       int
	Running     int
	Success     int
	Failed      int
	Interrupted int
	Pinned      int
	Collapsed   int
}

// LearningData is a snapshot of one completed block, shaped for
// downstream consumers (AI suggestion caches, agent context) that the
// core has no dependency on and never waits for.
type LearningData struct {
	Command     string
	Cwd         string
	ExitCode    int
	DurationMs  int64
	Interrupted bool
}

// Manager owns every block for one terminal pane.
type Manager struct {
	blocks    map[block.ID]*block.Block
	order     []block.ID
	active    *block.ID
	selected  *block.ID
	pinned    []block.ID
	maxBlocks int
	broker    *pubsub.Broker[BlockEvent]
}

// New creates an empty Manager with the given soft cap on block count.
// A maxBlocks of 0 or less uses DefaultMaxBlocks.
func New(maxBlocks int) *Manager {
	if maxBlocks <= 0 {
		maxBlocks = DefaultMaxBlocks
	}
	return &Manager{
		blocks:    make(map[block.ID]*block.Block),
		maxBlocks: maxBlocks,
		broker:    pubsub.NewBroker[BlockEvent](),
	}
}

// Events returns the manager's lifecycle event broker for subscribers
// (e.g. tracing, a log overlay) that must never block the manager.
func (m *Manager) Events() *pubsub.Broker[BlockEvent] {
	return m.broker
}

func (m *Manager) publish(kind EventKind, b *block.Block) {
	if m.broker == nil || b == nil {
		return
	}
	m.broker.Publish(pubsub.EventType(kind), BlockEvent{Kind: kind, Block: b.Snapshot()})
}

// StartBlock appends a new Running block and makes it active, then runs
// eviction. If a block is already active, the caller violated the
// single-active-block precondition: the prior block is left Running and
// abandoned (documented behaviour, not an error — see §7).
func (m *Manager) StartBlock(command, cwd string, startLine int) block.ID {
	b := block.New(command, cwd, startLine)
	m.blocks[b.ID] = b
	m.order = append(m.order, b.ID)
	id := b.ID
	m.active = &id

	log.Debug(log.CatBlockMgr, "block started", "id", b.ID, "command", b.Command, "line", startLine)
	m.publish(EventBlockStarted, b)

	m.evict()
	return b.ID
}

// EndBlock finalises the active block via Complete. No-op if no block
// is active (a protocol-ordering anomaly per §7 — never synthesises a
// block).
func (m *Manager) EndBlock(exitCode, endLine int) {
	if m.active == nil {
		log.Debug(log.CatBlockMgr, "end_block with no active block")
		return
	}
	b := m.blocks[*m.active]
	m.active = nil
	if b == nil {
		return
	}
	b.Complete(exitCode, endLine)
	log.Debug(log.CatBlockMgr, "block completed", "id", b.ID, "state", b.State.String())
	m.publish(EventBlockCompleted, b)
}

// InterruptBlock is symmetric to EndBlock but finalises via Interrupt.
func (m *Manager) InterruptBlock(endLine int) {
	if m.active == nil {
		log.Debug(log.CatBlockMgr, "interrupt_block with no active block")
		return
	}
	b := m.blocks[*m.active]
	m.active = nil
	if b == nil {
		return
	}
	b.Interrupt(endLine)
	log.Debug(log.CatBlockMgr, "block interrupted", "id", b.ID)
	m.publish(EventBlockInterrupted, b)
}

// Get returns the block with the given id, or nil if absent.
func (m *Manager) Get(id block.ID) *block.Block {
	return m.blocks[id]
}

// BlockAtLine scans block_order in reverse; the first block whose
// ContainsLine is true wins.
func (m *Manager) BlockAtLine(line int) *block.Block {
	for i := len(m.order) - 1; i >= 0; i-- {
		b := m.blocks[m.order[i]]
		if b != nil && b.ContainsLine(line) {
			return b
		}
	}
	return nil
}

// VisibleBlocks returns block_order filtered to blocks that are not
// collapsed, or are pinned (pinned blocks are always visible).
func (m *Manager) VisibleBlocks() []*block.Block {
	var out []*block.Block
	for _, id := range m.order {
		b := m.blocks[id]
		if b == nil {
			continue
		}
		if !b.Collapsed || b.Pinned {
			out = append(out, b)
		}
	}
	return out
}

// RecentBlocks returns the last n blocks in reverse insertion order.
func (m *Manager) RecentBlocks(n int) []*block.Block {
	if n <= 0 {
		return nil
	}
	out := make([]*block.Block, 0, n)
	for i := len(m.order) - 1; i >= 0 && len(out) < n; i-- {
		if b := m.blocks[m.order[i]]; b != nil {
			out = append(out, b)
		}
	}
	return out
}

// Search returns block IDs whose command contains the query,
// case-insensitively, in block_order.
func (m *Manager) Search(query string) []block.ID {
	q := strings.ToLower(query)
	var out []block.ID
	for _, id := range m.order {
		b := m.blocks[id]
		if b != nil && strings.Contains(strings.ToLower(b.Command), q) {
			out = append(out, id)
		}
	}
	return out
}

// ByState returns block IDs in the given state, in block_order.
func (m *Manager) ByState(state block.State) []block.ID {
	var out []block.ID
	for _, id := range m.order {
		b := m.blocks[id]
		if b != nil && b.State == state {
			out = append(out, id)
		}
	}
	return out
}

// SelectBlock sets the selection pointer. A nil id clears the selection.
func (m *Manager) SelectBlock(id *block.ID) {
	m.selected = id
}

// Selected returns the currently selected block id, if any.
func (m *Manager) Selected() *block.ID {
	return m.selected
}

// Active returns the currently running block id, if any.
func (m *Manager) Active() *block.ID {
	return m.active
}

// Stats returns counts by state plus pinned/collapsed tallies.
func (m *Manager) Stats() Stats {
	var s Stats
	for _, id := range m.order {
		b := m.blocks[id]
		if b == nil {
			continue
		}
		s.Total++
		switch b.State {
		case block.Running:
			s.Running++
		case block.Success:
			s.Success++
		case block.Failed:
			s.Failed++
		case block.Interrupted:
			s.Interrupted++
		}
		if b.Pinned {
			s.Pinned++
		}
		if b.Collapsed {
			s.Collapsed++
		}
	}
	return s
}

// GetLearningData snapshots a completed block for external consumers.
// Returns (zero, false) for a Running block or an unknown id.
func (m *Manager) GetLearningData(id block.ID) (LearningData, bool) {
	b := m.blocks[id]
	if b == nil || b.State == block.Running {
		return LearningData{}, false
	}
	return learningDataFor(b), true
}

// GetLastCompletedLearningData returns the learning data of the most
// recently completed (non-Running) block.
func (m *Manager) GetLastCompletedLearningData() (LearningData, bool) {
	for i := len(m.order) - 1; i >= 0; i-- {
		b := m.blocks[m.order[i]]
		if b != nil && b.State != block.Running {
			return learningDataFor(b), true
		}
	}
	return LearningData{}, false
}

func learningDataFor(b *block.Block) LearningData {
	ld := LearningData{
		Command: b.Command,
		Cwd:     b.WorkingDir,
	}
	if b.Duration != nil {
		ld.DurationMs = b.Duration.Milliseconds()
	}
	switch b.State {
	case block.Interrupted:
		ld.ExitCode = -1
		ld.Interrupted = true
	case block.Failed:
		if b.ExitCode != nil {
			ld.ExitCode = *b.ExitCode
		} else {
			ld.ExitCode = 1
		}
	case block.Success:
		ld.ExitCode = 0
	}
	return ld
}

// ExecuteAction performs a user-triggered action on a block. Returns
// (zero, false) for an unknown id — the manager never fails, it simply
// reports nothing happened.
func (m *Manager) ExecuteAction(id block.ID, action Action, arg string) (ActionResult, bool) {
	b := m.blocks[id]
	if b == nil {
		return ActionResult{}, false
	}

	switch action {
	case ActionToggleCollapse:
		b.Collapsed = !b.Collapsed
		m.publish(EventBlockChanged, b)
		return ActionResult{Kind: ResultStateChanged}, true

	case ActionCopyCommand:
		return ActionResult{Kind: ResultCopyToClipboard, Text: b.Command}, true

	case ActionCopyOutput, ActionCopyAll, ActionShare:
		return ActionResult{Kind: ResultNeedsTerminalData, RequiresTerminal: true}, true

	case ActionRerun:
		return ActionResult{Kind: ResultExecuteCommand, Text: b.Command}, true

	case ActionEditAndRun:
		return ActionResult{Kind: ResultEditCommand, Text: b.Command}, true

	case ActionExplain:
		return ActionResult{Kind: ResultSendToAI, Text: b.Command}, true

	case ActionTogglePin:
		b.Pinned = !b.Pinned
		if b.Pinned {
			m.addPinned(id)
		} else {
			m.removePinned(id)
		}
		m.publish(EventBlockChanged, b)
		return ActionResult{Kind: ResultStateChanged}, true

	case ActionAddNote:
		b.Notes = arg
		m.publish(EventBlockChanged, b)
		return ActionResult{Kind: ResultStateChanged}, true

	case ActionAddTag:
		for _, t := range b.Tags {
			if t == arg {
				return ActionResult{Kind: ResultStateChanged}, true
			}
		}
		b.Tags = append(b.Tags, arg)
		m.publish(EventBlockChanged, b)
		return ActionResult{Kind: ResultStateChanged}, true

	case ActionDelete:
		m.deleteBlock(id)
		log.Debug(log.CatBlockMgr, "block deleted", "id", id)
		m.publish(EventBlockDeleted, b)
		return ActionResult{Kind: ResultDeleted}, true
	}

	return ActionResult{}, false
}

func (m *Manager) addPinned(id block.ID) {
	for _, p := range m.pinned {
		if p == id {
			return
		}
	}
	m.pinned = append(m.pinned, id)
}

func (m *Manager) removePinned(id block.ID) {
	for i, p := range m.pinned {
		if p == id {
			m.pinned = append(m.pinned[:i], m.pinned[i+1:]...)
			return
		}
	}
}

func (m *Manager) deleteBlock(id block.ID) {
	delete(m.blocks, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.removePinned(id)
	if m.selected != nil && *m.selected == id {
		m.selected = nil
	}
}

// evict removes the oldest non-pinned block while the pane is over the
// soft cap. If every remaining block is pinned, it stops (the cap is
// soft in the presence of pins).
func (m *Manager) evict() {
	for len(m.order) > m.maxBlocks {
		victim, ok := m.oldestEvictable()
		if !ok {
			return
		}
		b := m.blocks[victim]
		m.deleteBlock(victim)
		if b != nil {
			m.publish(EventBlockEvicted, b)
		}
	}
}

func (m *Manager) oldestEvictable() (block.ID, bool) {
	for _, id := range m.order {
		if b := m.blocks[id]; b != nil && !b.Pinned {
			return id, true
		}
	}
	return 0, false
}

// Len reports the current number of blocks held (for eviction tests).
func (m *Manager) Len() int {
	return len(m.order)
}
