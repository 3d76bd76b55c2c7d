// Package overlay turns a layout.BlockLayout sequence into draw commands:
// filled rectangles at two z-layers above the glyph layer. Header labels
// are not part of Render's output; TruncateHeader fits a label to a
// display width for hosts that draw it. It owns nothing but a
// BlockRenderConfig and is safe to call repeatedly from a render loop —
// no internal state survives between calls.
package overlay

import (
	"github.com/rivo/uniseg"

	"github.com/cxterm/blockengine/internal/block"
	"github.com/cxterm/blockengine/internal/layout"
)

// Color is an RGBA colour tuple, 0-255 per channel.
type Color struct {
	R, G, B, A uint8
}

// BlockRenderConfig describes every colour and dimension the renderer
// needs. The zero value is unusable; call DefaultConfig for sane values.
type BlockRenderConfig struct {
	HeaderBG               map[block.State]Color
	StatusColor            map[block.State]Color
	BorderColor            Color
	BorderWidth            int
	HoverTint              Color
	SelectedBrightenFactor float64 // e.g. 1.2
	ActionButtonAlpha      uint8   // 0-255, applied over HoverTint
}

// DefaultConfig returns a BlockRenderConfig with the engine's built-in
// palette.
func DefaultConfig() BlockRenderConfig {
	return BlockRenderConfig{
		HeaderBG: map[block.State]Color{
			block.Running:     {R: 0x35, G: 0x44, B: 0x5E, A: 0xFF},
			block.Success:     {R: 0x1F, G: 0x3A, B: 0x2A, A: 0xFF},
			block.Failed:      {R: 0x4A, G: 0x1F, B: 0x1F, A: 0xFF},
			block.Interrupted: {R: 0x4A, G: 0x3D, B: 0x1F, A: 0xFF},
		},
		StatusColor: map[block.State]Color{
			block.Running:     {R: 0x54, G: 0xA0, B: 0xFF, A: 0xFF},
			block.Success:     {R: 0x73, G: 0xF5, B: 0x9F, A: 0xFF},
			block.Failed:      {R: 0xFF, G: 0x87, B: 0x87, A: 0xFF},
			block.Interrupted: {R: 0xF5, G: 0xD7, B: 0x73, A: 0xFF},
		},
		BorderColor:            Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		BorderWidth:            1,
		HoverTint:              Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0x20},
		SelectedBrightenFactor: 1.2,
		ActionButtonAlpha:      0x80,
	}
}

// DrawKind discriminates what a DrawCommand paints.
type DrawKind int

const (
	DrawHeaderBackground DrawKind = iota
	DrawStatusRibbon
	DrawSelectedBorder
	DrawActionButton
	DrawCollapseGlyph
)

// DrawCommand is one filled-rectangle paint operation.
type DrawCommand struct {
	Kind    DrawKind
	Rect    layout.Rect
	Color   Color
	ZLayer  int // 1 or 2, per spec's two overlay layers
	BlockID block.ID
	Element layout.UIElement
}

// Render produces the draw commands for one frame. states supplies each
// block's lifecycle state by ID — the renderer never reaches back into a
// manager itself.
func Render(layouts []layout.BlockLayout, states map[block.ID]block.State, cfg BlockRenderConfig) []DrawCommand {
	var out []DrawCommand
	for _, bl := range layouts {
		state := states[bl.BlockID]

		headerColor := brighten(cfg.HeaderBG[state], bl.Selected, cfg.SelectedBrightenFactor)
		if bl.Hovered {
			headerColor = blend(headerColor, cfg.HoverTint)
		}
		out = append(out, DrawCommand{
			Kind: DrawHeaderBackground, Rect: bl.HeaderRect, Color: headerColor,
			ZLayer: 1, BlockID: bl.BlockID,
		})

		out = append(out, DrawCommand{
			Kind: DrawStatusRibbon, Rect: bl.StatusRect, Color: cfg.StatusColor[state],
			ZLayer: 1, BlockID: bl.BlockID,
		})

		if bl.Selected {
			out = append(out, borderCommands(bl, cfg)...)
		}

		if bl.Hovered {
			buttonColor := cfg.HoverTint
			buttonColor.A = cfg.ActionButtonAlpha
			for _, btn := range bl.ActionButtons {
				out = append(out, DrawCommand{
					Kind: DrawActionButton, Rect: btn.Rect, Color: buttonColor,
					ZLayer: 2, BlockID: bl.BlockID, Element: btn.Element,
				})
			}
		}

		if bl.CollapseToggleRect != nil {
			out = append(out, DrawCommand{
				Kind: DrawCollapseGlyph, Rect: *bl.CollapseToggleRect, Color: cfg.BorderColor,
				ZLayer: 2, BlockID: bl.BlockID, Element: layout.ElementCollapseToggle,
			})
		}
	}
	return out
}

// borderCommands emits the four edges of a selected block's border as
// thin rectangles, cfg.BorderWidth pixels thick.
func borderCommands(bl layout.BlockLayout, cfg BlockRenderConfig) []DrawCommand {
	r := bl.BlockRect
	w := cfg.BorderWidth
	if w <= 0 {
		w = 1
	}
	edges := []layout.Rect{
		{X: r.X, Y: r.Y, W: r.W, H: w},          // top
		{X: r.X, Y: r.Y + r.H - w, W: r.W, H: w}, // bottom
		{X: r.X, Y: r.Y, W: w, H: r.H},           // left
		{X: r.X + r.W - w, Y: r.Y, W: w, H: r.H}, // right
	}
	cmds := make([]DrawCommand, 0, len(edges))
	for _, e := range edges {
		cmds = append(cmds, DrawCommand{
			Kind: DrawSelectedBorder, Rect: e, Color: cfg.BorderColor,
			ZLayer: 1, BlockID: bl.BlockID,
		})
	}
	return cmds
}

func brighten(c Color, selected bool, factor float64) Color {
	if !selected || factor <= 1.0 {
		return c
	}
	return Color{
		R: scaleChannel(c.R, factor),
		G: scaleChannel(c.G, factor),
		B: scaleChannel(c.B, factor),
		A: c.A,
	}
}

func scaleChannel(v uint8, factor float64) uint8 {
	scaled := float64(v) * factor
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}

// blend alpha-composites src over dst (src.A out of 255).
func blend(dst, src Color) Color {
	a := float64(src.A) / 255.0
	return Color{
		R: uint8(float64(src.R)*a + float64(dst.R)*(1-a)),
		G: uint8(float64(src.G)*a + float64(dst.G)*(1-a)),
		B: uint8(float64(src.B)*a + float64(dst.B)*(1-a)),
		A: dst.A,
	}
}

// TruncateHeader renders command text to fit within maxWidth display
// cells (as measured by east-asian-aware grapheme width), appending an
// ellipsis when truncated. maxWidth <= 0 disables truncation.
func TruncateHeader(command string, maxWidth int) string {
	if maxWidth <= 0 || uniseg.StringWidth(command) <= maxWidth {
		return command
	}
	if maxWidth <= 1 {
		return "…"
	}

	budget := maxWidth - 1 // reserve one cell for the ellipsis
	gr := uniseg.NewGraphemes(command)
	var out []byte
	width := 0
	for gr.Next() {
		w := uniseg.StringWidth(gr.Str())
		if width+w > budget {
			break
		}
		out = append(out, gr.Str()...)
		width += w
	}
	return string(out) + "…"
}
