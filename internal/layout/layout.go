// Package layout projects a pane's visible blocks onto screen rectangles
// given the current viewport, cell metrics, and collapse state. It holds
// no state of its own beyond the Viewport passed to Compute and never
// mutates the manager it reads from.
package layout

import (
	"github.com/cxterm/blockengine/internal/block"
	"github.com/cxterm/blockengine/internal/blockmanager"
)

// Rect is an axis-aligned pixel rectangle, (x, y) top-left, (w, h) extent.
type Rect struct {
	X, Y, W, H int
}

// Viewport describes the visible window onto a pane's scrollback and its
// placement on screen.
type Viewport struct {
	// TopLine is the absolute scrollback line at the top of the viewport.
	TopLine int
	// Rows is the number of visible terminal rows.
	Rows int
	// CellWidth/CellHeight are the pixel dimensions of one character cell.
	CellWidth  int
	CellHeight int
	// LeftOffset/TopOffset place the pane's origin in screen pixels.
	LeftOffset int
	TopOffset  int
	// PaneWidth is the pane's width in pixels.
	PaneWidth int
}

// UIElement identifies a sub-region of a block's layout for hit-testing.
type UIElement int

const (
	ElementHeader UIElement = iota
	ElementStatusIndicator
	ElementContent
	ElementBorder
	ElementCollapseToggle
	ElementCopyCommand
	ElementRerunButton
	ElementExplainButton
)

// ActionButton is one hover-revealed action button and its rectangle.
type ActionButton struct {
	Rect    Rect
	Element UIElement
}

// BlockLayout is the projected geometry for one block.
type BlockLayout struct {
	BlockID block.ID

	BlockRect          Rect
	HeaderRect         Rect
	StatusRect         Rect
	CollapseToggleRect *Rect
	ActionButtons      []ActionButton

	Selected bool
	Hovered  bool
}

// statusRibbonWidth is the pixel width of the left-edge state ribbon.
const statusRibbonWidth = 3

// Compute projects every visible block in mgr onto vp, returning layouts
// in block_order. The manager is borrowed by shared reference only for
// the duration of this call; Compute never stores it.
func Compute(mgr *blockmanager.Manager, vp Viewport, selected, hovered *block.ID) []BlockLayout {
	var out []BlockLayout
	for _, b := range mgr.VisibleBlocks() {
		start := b.StartLine - vp.TopLine
		end := b.EndLine - vp.TopLine
		if b.State.String() == "running" {
			end = vp.Rows
		}

		if end < 0 || start >= vp.Rows {
			continue
		}
		if start < 0 {
			start = 0
		}

		h := (end - start) * vp.CellHeight
		if h < vp.CellHeight {
			h = vp.CellHeight
		}

		y := vp.TopOffset + start*vp.CellHeight
		x := vp.LeftOffset
		w := vp.PaneWidth

		bl := BlockLayout{
			BlockID:    b.ID,
			BlockRect:  Rect{X: x, Y: y, W: w, H: h},
			HeaderRect: Rect{X: x, Y: y, W: w, H: vp.CellHeight},
			StatusRect: Rect{X: x, Y: y, W: statusRibbonWidth, H: h},
		}

		hasContent := b.EndLine > b.StartLine || b.State.String() != "running"
		if hasContent {
			toggleSize := vp.CellHeight
			rect := Rect{
				X: x + (vp.CellHeight-toggleSize)/2,
				Y: y,
				W: toggleSize,
				H: vp.CellHeight,
			}
			bl.CollapseToggleRect = &rect
		}

		bl.Selected = selected != nil && *selected == b.ID
		bl.Hovered = hovered != nil && *hovered == b.ID
		if bl.Hovered {
			bl.ActionButtons = hoverButtons(x, y, w, vp.CellHeight)
		}

		out = append(out, bl)
	}
	return out
}

func hoverButtons(x, y, w, cellHeight int) []ActionButton {
	const buttonWidth = 24
	n := 3
	buttons := make([]ActionButton, 0, n)
	elements := []UIElement{ElementCopyCommand, ElementRerunButton, ElementExplainButton}
	for i, el := range elements {
		bx := x + w - (i+1)*buttonWidth
		buttons = append(buttons, ActionButton{
			Rect:    Rect{X: bx, Y: y, W: buttonWidth, H: cellHeight},
			Element: el,
		})
	}
	return buttons
}
