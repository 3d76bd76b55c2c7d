// Package keys contains keybinding definitions for the block engine demo.
package keys

import "github.com/charmbracelet/bubbles/key"

// Common contains keybindings shared across the pane view.
var Common = struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Escape key.Binding
	Quit   key.Binding
	Help   key.Binding
}{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "select previous block"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "select next block"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear selection"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

// Block contains keybindings for actions on the selected block.
var Block = struct {
	ToggleCollapse key.Binding
	CopyCommand    key.Binding
	CopyOutput     key.Binding
	Rerun          key.Binding
	EditAndRun     key.Binding
	Explain        key.Binding
	TogglePin      key.Binding
	AddTag         key.Binding
	Delete         key.Binding
	Search         key.Binding
}{
	ToggleCollapse: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle collapse"),
	),
	CopyCommand: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy command"),
	),
	CopyOutput: key.NewBinding(
		key.WithKeys("Y"),
		key.WithHelp("Y", "copy output"),
	),
	Rerun: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rerun command"),
	),
	EditAndRun: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "edit and rerun"),
	),
	Explain: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "ask AI to explain"),
	),
	TogglePin: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle pin"),
	),
	AddTag: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "add tag"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete block"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search commands"),
	),
}

// ShortHelp returns keybindings for the short help view.
func ShortHelp() []key.Binding {
	return []key.Binding{Common.Help, Common.Quit}
}

// FullHelp returns keybindings for the full help view.
func FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{Common.Up, Common.Down, Common.Enter, Common.Escape},
		{Block.ToggleCollapse, Block.CopyCommand, Block.CopyOutput, Block.Rerun, Block.EditAndRun},
		{Block.Explain, Block.TogglePin, Block.AddTag, Block.Delete, Block.Search},
		{Common.Help, Common.Quit},
	}
}
