package blockdemo

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/cxterm/blockengine/internal/block"
	"github.com/cxterm/blockengine/internal/dispatch"
	"github.com/cxterm/blockengine/internal/integrator"
)

var stateStyles = map[block.State]lipgloss.Style{
	block.Running:     lipgloss.NewStyle().Foreground(lipgloss.Color("#54A0FF")),
	block.Success:     lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F")),
	block.Failed:      lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787")),
	block.Interrupted: lipgloss.NewStyle().Foreground(lipgloss.Color("#F5D773")),
}

func styledState(s block.State) string {
	style, ok := stateStyles[s]
	if !ok {
		return s.String()
	}
	return style.Render(s.String())
}

func printBlockTable(w io.Writer, in *integrator.Integrator, pane integrator.PaneID) {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tCOMMAND\tSTATE\tSTART\tEND\tDURATION")
	for _, b := range in.Manager(pane).VisibleBlocks() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n",
			b.ID, b.Command, styledState(b.State), b.StartLine, b.EndLine, b.DurationDisplay())
	}

	stats := in.BlockStats(pane)
	fmt.Fprintf(tw, "\ntotal=%d running=%d success=%d failed=%d interrupted=%d pinned=%d\n",
		stats.Total, stats.Running, stats.Success, stats.Failed, stats.Interrupted, stats.Pinned)
}

func printDispatchSummary(w io.Writer, outbox *dispatch.Outbox) {
	pending := outbox.Drain()
	if len(pending) == 0 {
		fmt.Fprintln(w, "\nno AI/agent requests dispatched")
		return
	}

	fmt.Fprintf(w, "\n%d AI/agent request(s) dispatched:\n", len(pending))
	for _, req := range pending {
		switch req.Kind {
		case dispatch.KindExplain:
			fmt.Fprintf(w, "  explain: %s\n", req.Command)
		case dispatch.KindSuggest:
			fmt.Fprintf(w, "  suggest: %s\n", req.Query)
		case dispatch.KindAgent:
			fmt.Fprintf(w, "  agent %s: %s\n", req.AgentName, req.Command)
		}
	}
}
