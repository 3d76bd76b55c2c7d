package overlay

import (
	"fmt"
	"strconv"
	"strings"

	zone "github.com/lrstanley/bubblezone"

	"github.com/cxterm/blockengine/internal/block"
	"github.com/cxterm/blockengine/internal/layout"
)

// zonePrefix namespaces this package's zone IDs within the host
// application's shared bubblezone manager.
const zonePrefix = "blockengine:"

// ZoneID returns the bubblezone identifier for a block's UI element,
// matching the naming scheme the host uses for tabs and pane borders
// (a colon-separated prefix plus element coordinates).
func ZoneID(id block.ID, el layout.UIElement) string {
	return fmt.Sprintf("%s%d:%d", zonePrefix, id, el)
}

// MarkHeader wraps the rendered header label for a block in a bubblezone
// marker so a host using the textual (non-GPU) rendering path can resolve
// pointer clicks on the header row via zone.Get/InBounds.
func MarkHeader(id block.ID, label string) string {
	return zone.Mark(ZoneID(id, layout.ElementHeader), label)
}

// ParseZoneID recovers the block ID and element encoded by ZoneID.
func ParseZoneID(id string) (block.ID, layout.UIElement, bool) {
	rest, ok := strings.CutPrefix(id, zonePrefix)
	if !ok {
		return 0, 0, false
	}
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	bid, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, false
	}
	el, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return block.ID(bid), layout.UIElement(el), true
}

// HitTest resolves a pixel point against a layout sequence's action
// buttons and collapse toggle — the GPU overlay's own pixel rectangles,
// which live outside the terminal cell grid that bubblezone's string
// scanning covers. Header/content/border hits are resolved by the host
// via the bubblezone marker from MarkHeader instead.
func HitTest(layouts []layout.BlockLayout, x, y int) (block.ID, layout.UIElement, bool) {
	for _, bl := range layouts {
		if bl.CollapseToggleRect != nil && contains(*bl.CollapseToggleRect, x, y) {
			return bl.BlockID, layout.ElementCollapseToggle, true
		}
		for _, btn := range bl.ActionButtons {
			if contains(btn.Rect, x, y) {
				return bl.BlockID, btn.Element, true
			}
		}
	}
	return 0, 0, false
}

func contains(r layout.Rect, x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
