package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cxterm/blockengine/internal/block"
	"github.com/cxterm/blockengine/internal/layout"
)

func TestRender_HeaderAndStatusColoredByState(t *testing.T) {
	cfg := DefaultConfig()
	layouts := []layout.BlockLayout{
		{
			BlockID:    1,
			HeaderRect: layout.Rect{X: 0, Y: 0, W: 100, H: 16},
			StatusRect: layout.Rect{X: 0, Y: 0, W: 3, H: 16},
		},
	}
	states := map[block.ID]block.State{1: block.Failed}

	cmds := Render(layouts, states, cfg)

	var header, status *DrawCommand
	for i := range cmds {
		switch cmds[i].Kind {
		case DrawHeaderBackground:
			header = &cmds[i]
		case DrawStatusRibbon:
			status = &cmds[i]
		}
	}
	require.NotNil(t, header)
	require.NotNil(t, status)
	require.Equal(t, cfg.HeaderBG[block.Failed], header.Color)
	require.Equal(t, cfg.StatusColor[block.Failed], status.Color)
}

func TestRender_SelectedBrightensHeaderAndDrawsFourBorderEdges(t *testing.T) {
	cfg := DefaultConfig()
	layouts := []layout.BlockLayout{
		{
			BlockID:    2,
			BlockRect:  layout.Rect{X: 0, Y: 0, W: 100, H: 32},
			HeaderRect: layout.Rect{X: 0, Y: 0, W: 100, H: 16},
			StatusRect: layout.Rect{X: 0, Y: 0, W: 3, H: 32},
			Selected:   true,
		},
	}
	states := map[block.ID]block.State{2: block.Success}

	cmds := Render(layouts, states, cfg)

	var header DrawCommand
	borders := 0
	for _, c := range cmds {
		if c.Kind == DrawHeaderBackground {
			header = c
		}
		if c.Kind == DrawSelectedBorder {
			borders++
		}
	}
	require.Equal(t, 4, borders, "selected block should draw all four border edges")
	require.NotEqual(t, cfg.HeaderBG[block.Success], header.Color, "selected header should be brightened")
}

func TestRender_NotSelectedDrawsNoBorder(t *testing.T) {
	cfg := DefaultConfig()
	layouts := []layout.BlockLayout{
		{BlockID: 3, HeaderRect: layout.Rect{W: 10, H: 10}, StatusRect: layout.Rect{W: 3, H: 10}},
	}
	cmds := Render(layouts, map[block.ID]block.State{3: block.Running}, cfg)

	for _, c := range cmds {
		require.NotEqual(t, DrawSelectedBorder, c.Kind)
	}
}

func TestRender_HoveredRevealsActionButtonsAtHoverAlpha(t *testing.T) {
	cfg := DefaultConfig()
	layouts := []layout.BlockLayout{
		{
			BlockID:    4,
			HeaderRect: layout.Rect{W: 100, H: 16},
			StatusRect: layout.Rect{W: 3, H: 16},
			Hovered:    true,
			ActionButtons: []layout.ActionButton{
				{Rect: layout.Rect{X: 52, W: 24, H: 16}, Element: layout.ElementCopyCommand},
				{Rect: layout.Rect{X: 76, W: 24, H: 16}, Element: layout.ElementRerunButton},
			},
		},
	}

	cmds := Render(layouts, map[block.ID]block.State{4: block.Running}, cfg)

	var buttons []DrawCommand
	for _, c := range cmds {
		if c.Kind == DrawActionButton {
			buttons = append(buttons, c)
		}
	}
	require.Len(t, buttons, 2)
	for _, b := range buttons {
		require.Equal(t, cfg.ActionButtonAlpha, b.Color.A)
		require.Equal(t, 2, b.ZLayer)
	}
}

func TestRender_NotHoveredDrawsNoActionButtons(t *testing.T) {
	cfg := DefaultConfig()
	layouts := []layout.BlockLayout{
		{
			BlockID:    5,
			HeaderRect: layout.Rect{W: 100, H: 16},
			StatusRect: layout.Rect{W: 3, H: 16},
			Hovered:    false,
			ActionButtons: []layout.ActionButton{
				{Rect: layout.Rect{W: 24, H: 16}, Element: layout.ElementCopyCommand},
			},
		},
	}

	cmds := Render(layouts, map[block.ID]block.State{5: block.Running}, cfg)

	for _, c := range cmds {
		require.NotEqual(t, DrawActionButton, c.Kind)
	}
}

func TestRender_CollapseGlyphOnlyWhenRectPresent(t *testing.T) {
	cfg := DefaultConfig()
	rect := layout.Rect{X: 0, Y: 0, W: 16, H: 16}
	layouts := []layout.BlockLayout{
		{BlockID: 6, HeaderRect: layout.Rect{W: 10, H: 10}, StatusRect: layout.Rect{W: 3, H: 10}, CollapseToggleRect: &rect},
		{BlockID: 7, HeaderRect: layout.Rect{W: 10, H: 10}, StatusRect: layout.Rect{W: 3, H: 10}, CollapseToggleRect: nil},
	}

	cmds := Render(layouts, map[block.ID]block.State{6: block.Success, 7: block.Running}, cfg)

	glyphs := map[block.ID]bool{}
	for _, c := range cmds {
		if c.Kind == DrawCollapseGlyph {
			glyphs[c.BlockID] = true
		}
	}
	require.True(t, glyphs[6])
	require.False(t, glyphs[7])
}

func TestBrighten_UnselectedUnchanged(t *testing.T) {
	c := Color{R: 10, G: 20, B: 30, A: 255}
	require.Equal(t, c, brighten(c, false, 1.2))
}

func TestBrighten_SelectedScalesChannelsAndClamps(t *testing.T) {
	c := Color{R: 200, G: 100, B: 50, A: 255}
	got := brighten(c, true, 2.0)
	require.Equal(t, uint8(255), got.R, "channel should clamp at 255")
	require.Equal(t, uint8(200), got.G)
	require.Equal(t, c.A, got.A, "alpha is untouched by brighten")
}

func TestScaleChannel(t *testing.T) {
	require.Equal(t, uint8(255), scaleChannel(200, 2.0))
	require.Equal(t, uint8(100), scaleChannel(100, 1.0))
}

func TestBlend_FullAlphaSrcWins(t *testing.T) {
	dst := Color{R: 0, G: 0, B: 0, A: 255}
	src := Color{R: 255, G: 255, B: 255, A: 255}
	got := blend(dst, src)
	require.Equal(t, uint8(255), got.R)
	require.Equal(t, dst.A, got.A, "blend preserves destination alpha")
}

func TestBlend_ZeroAlphaSrcNoOp(t *testing.T) {
	dst := Color{R: 10, G: 20, B: 30, A: 255}
	src := Color{R: 255, G: 255, B: 255, A: 0}
	require.Equal(t, dst, blend(dst, src))
}

func TestTruncateHeader_ShortStringUnchanged(t *testing.T) {
	require.Equal(t, "git status", TruncateHeader("git status", 40))
}

func TestTruncateHeader_ZeroOrNegativeDisablesTruncation(t *testing.T) {
	long := "a very long command that would normally be truncated indeed"
	require.Equal(t, long, TruncateHeader(long, 0))
	require.Equal(t, long, TruncateHeader(long, -5))
}

func TestTruncateHeader_ReservesSpaceForEllipsis(t *testing.T) {
	got := TruncateHeader("docker compose up --build", 10)
	require.LessOrEqual(t, len([]rune(got)), 10)
	require.Contains(t, got, "…")
}

func TestTruncateHeader_WidthOfOneIsBareEllipsis(t *testing.T) {
	require.Equal(t, "…", TruncateHeader("docker compose", 1))
}
