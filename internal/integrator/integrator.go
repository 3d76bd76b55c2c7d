// Package integrator is the terminal-window integrator: the seam between
// a host terminal emulator's panes and the block engine's core. For every
// pane it owns a BlockManager and a CWD string, decodes OSC extension
// sequences into manager calls, turns pointer clicks into block actions,
// and drives layout/overlay computation for painting. Nothing here
// outlives a single pane's lifetime and nothing blocks: AI/agent
// collaborators are reached only through the fire-and-forget dispatch
// outbox.
package integrator

import (
	"github.com/cxterm/blockengine/internal/block"
	"github.com/cxterm/blockengine/internal/blockmanager"
	"github.com/cxterm/blockengine/internal/cx"
	"github.com/cxterm/blockengine/internal/dispatch"
	"github.com/cxterm/blockengine/internal/layout"
	"github.com/cxterm/blockengine/internal/log"
	"github.com/cxterm/blockengine/internal/overlay"
)

// PaneID identifies one terminal pane. The host assigns these; the
// integrator never interprets the value beyond using it as a map key.
type PaneID string

// paneState is everything the integrator tracks for one pane.
type paneState struct {
	manager         *blockmanager.Manager
	cwd             string
	selected        *block.ID
	hovered         *block.ID
	features        cx.Features
	hasSeenFeatures bool
}

// Integrator owns one BlockManager and CWD per pane, plus the shared
// dispatch outbox that every pane's AI/agent requests feed into.
type Integrator struct {
	panes     map[PaneID]*paneState
	maxBlocks int
	outbox    *dispatch.Outbox
}

// New creates an Integrator. maxBlocks is forwarded to each pane's
// BlockManager; outbox receives every AIExplain/AISuggest/AgentRequest
// raised by any pane.
func New(maxBlocks int, outbox *dispatch.Outbox) *Integrator {
	return &Integrator{
		panes:     make(map[PaneID]*paneState),
		maxBlocks: maxBlocks,
		outbox:    outbox,
	}
}

// pane returns the pane's state, creating a fresh BlockManager on first
// reference. The integrator is the only place a pane's lifetime is
// decided; nothing else in the core creates a Manager.
func (in *Integrator) pane(id PaneID) *paneState {
	p, ok := in.panes[id]
	if !ok {
		p = &paneState{manager: blockmanager.New(in.maxBlocks)}
		in.panes[id] = p
	}
	return p
}

// Manager returns the BlockManager backing pane, creating it if this is
// the first reference to that pane.
func (in *Integrator) Manager(pane PaneID) *blockmanager.Manager {
	return in.pane(pane).manager
}

// HandleExtensionSequence decodes one OSC 777;cx; payload and applies its
// effect to pane, per the event table: BlockStart/BlockEnd drive the
// manager, CwdChanged updates the pane's working directory,
// AIExplain/AISuggest/AgentRequest are pushed onto the dispatch outbox,
// Features is logged as a capability handshake, Unknown is logged at
// warn, and PromptStart/PromptEnd are reserved no-ops. currentLine is the
// pane's current absolute scrollback line.
func (in *Integrator) HandleExtensionSequence(pane PaneID, payload string, currentLine int) {
	event, ok := cx.Parse(payload)
	if !ok {
		log.Debug(log.CatIntegrator, "extension sequence not recognised", "pane", pane, "payload", payload)
		return
	}

	p := in.pane(pane)

	switch ev := event.(type) {
	case cx.BlockStart:
		p.manager.StartBlock(ev.Command, p.cwd, currentLine)
		log.Debug(log.CatIntegrator, "block started", "pane", pane, "command", ev.Command)

	case cx.BlockEnd:
		p.manager.EndBlock(ev.ExitCode, currentLine)
		log.Debug(log.CatIntegrator, "block ended", "pane", pane, "exit_code", ev.ExitCode)

	case cx.CwdChanged:
		p.cwd = ev.Path
		log.Debug(log.CatIntegrator, "cwd changed", "pane", pane, "path", ev.Path)

	case cx.PromptStart, cx.PromptEnd:
		// Reserved boundary hints. The core uses BlockStart/BlockEnd as the
		// sole source of truth and never falls back to prompt markers.

	case cx.AIExplain:
		in.submitDispatch(pane, dispatch.Request{
			Kind:    dispatch.KindExplain,
			BlockID: activeOrSelected(p),
			Command: ev.Text,
		})

	case cx.AISuggest:
		in.submitDispatch(pane, dispatch.Request{
			Kind:  dispatch.KindSuggest,
			Query: ev.Query,
		})

	case cx.AgentRequest:
		in.submitDispatch(pane, dispatch.Request{
			Kind:      dispatch.KindAgent,
			BlockID:   activeOrSelected(p),
			AgentName: ev.Name,
			Command:   ev.Command,
		})

	case cx.Features:
		p.features = ev
		p.hasSeenFeatures = true
		log.Info(log.CatIntegrator, "capability handshake", "pane", pane,
			"blocks", ev.Blocks, "ai", ev.AI, "agents", ev.Agents)

	case cx.Unknown:
		log.Warn(log.CatIntegrator, "unrecognised extension sequence", "pane", pane, "raw", ev.Raw)
	}
}

func (in *Integrator) submitDispatch(pane PaneID, req dispatch.Request) {
	if in.outbox == nil {
		log.Warn(log.CatIntegrator, "no dispatch outbox configured, dropping request", "pane", pane, "kind", req.Kind)
		return
	}
	in.outbox.Submit(req)
}

// activeOrSelected returns the block an AI/agent request should be
// attributed to: the running block if there is one, else the current
// selection. Returns the zero ID if neither is set.
func activeOrSelected(p *paneState) block.ID {
	if p.manager.Active() != nil {
		return *p.manager.Active()
	}
	if p.manager.Selected() != nil {
		return *p.manager.Selected()
	}
	return 0
}

// HandleBlockClick translates a pointer hit inside a block's UI element
// into a BlockAction and executes it. Header, StatusIndicator, Content,
// and Border are passive — (zero value, false) is returned for those and
// for any block ID the pane's manager doesn't recognise.
func (in *Integrator) HandleBlockClick(pane PaneID, id block.ID, el layout.UIElement) (blockmanager.ActionResult, bool) {
	action, ok := actionForElement(el)
	if !ok {
		return blockmanager.ActionResult{}, false
	}
	return in.pane(pane).manager.ExecuteAction(id, action, "")
}

func actionForElement(el layout.UIElement) (blockmanager.Action, bool) {
	switch el {
	case layout.ElementCollapseToggle:
		return blockmanager.ActionToggleCollapse, true
	case layout.ElementCopyCommand:
		return blockmanager.ActionCopyCommand, true
	case layout.ElementRerunButton:
		return blockmanager.ActionRerun, true
	case layout.ElementExplainButton:
		return blockmanager.ActionExplain, true
	default:
		return 0, false
	}
}

// SelectBlock marks id as pane's selection, or clears it if id is nil.
func (in *Integrator) SelectBlock(pane PaneID, id *block.ID) {
	p := in.pane(pane)
	p.manager.SelectBlock(id)
	p.selected = id
}

// ClearBlockSelection clears pane's current selection.
func (in *Integrator) ClearBlockSelection(pane PaneID) {
	in.SelectBlock(pane, nil)
}

// SetHoveredBlock records which block, if any, the pointer currently
// hovers over in pane — consumed by the next PaintBlocks call.
func (in *Integrator) SetHoveredBlock(pane PaneID, id *block.ID) {
	in.pane(pane).hovered = id
}

// ToggleBlockCollapse flips id's collapsed flag in pane via the manager's
// action table, mirroring what a collapse-toggle click does.
func (in *Integrator) ToggleBlockCollapse(pane PaneID, id block.ID) (blockmanager.ActionResult, bool) {
	return in.pane(pane).manager.ExecuteAction(id, blockmanager.ActionToggleCollapse, "")
}

// BlockAtLine returns the block occupying line in pane's scrollback, if any.
func (in *Integrator) BlockAtLine(pane PaneID, line int) *block.Block {
	return in.pane(pane).manager.BlockAtLine(line)
}

// InterruptActiveBlock ends pane's running block, if any, as Interrupted.
func (in *Integrator) InterruptActiveBlock(pane PaneID, currentLine int) {
	in.pane(pane).manager.InterruptBlock(currentLine)
}

// BlockStats summarises pane's block collection.
func (in *Integrator) BlockStats(pane PaneID) blockmanager.Stats {
	return in.pane(pane).manager.Stats()
}

// SearchBlocks returns the IDs of pane's blocks whose command contains
// query, case-insensitively. Notes and tags are not searched.
func (in *Integrator) SearchBlocks(pane PaneID, query string) []block.ID {
	return in.pane(pane).manager.Search(query)
}

// PaneCWD returns pane's last-known working directory.
func (in *Integrator) PaneCWD(pane PaneID) string {
	return in.pane(pane).cwd
}

// SetPaneCWD sets pane's working directory directly, bypassing the
// extension-sequence path — used by hosts that track CWD through a
// side channel (e.g. shell hooks outside the OSC 777 protocol).
func (in *Integrator) SetPaneCWD(pane PaneID, path string) {
	in.pane(pane).cwd = path
}

// PaneFeatures returns the last capability handshake pane reported, and
// whether one has ever been seen.
func (in *Integrator) PaneFeatures(pane PaneID) (cx.Features, bool) {
	p := in.pane(pane)
	return p.features, p.hasSeenFeatures
}

// PaintBlocks computes this frame's layout and draw commands for pane.
// It looks up the pane's manager once, then calls layout.Compute and
// overlay.Render without retaining any reference back into the
// integrator's pane map. layout.Compute reads the Manager for the
// duration of the call only; overlay.Render never sees a Manager or an
// Integrator, only the layouts, block states and BlockRenderConfig.
func (in *Integrator) PaintBlocks(pane PaneID, vp layout.Viewport, cfg overlay.BlockRenderConfig) []overlay.DrawCommand {
	p := in.pane(pane)
	mgr := p.manager

	layouts := layout.Compute(mgr, vp, p.selected, p.hovered)

	states := make(map[block.ID]block.State, len(layouts))
	for _, bl := range layouts {
		if b := mgr.Get(bl.BlockID); b != nil {
			states[bl.BlockID] = b.State
		}
	}

	return overlay.Render(layouts, states, cfg)
}
