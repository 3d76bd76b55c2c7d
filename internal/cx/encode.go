package cx

import "strconv"

// Encode renders an Event back to its OSC wire form. It exists only to
// exercise the round-trip property in tests — the shell integration
// produces the wire form at runtime, the core never needs to.
func Encode(e Event) string {
	switch ev := e.(type) {
	case BlockStart:
		return Prefix + "block;start;cmd=" + ev.Command + ";time=" + strconv.FormatInt(ev.Timestamp, 10)
	case BlockEnd:
		return Prefix + "block;end;exit=" + strconv.Itoa(ev.ExitCode) + ";time=" + strconv.FormatInt(ev.Timestamp, 10)
	case PromptStart:
		return Prefix + "prompt;start"
	case PromptEnd:
		return Prefix + "prompt;end"
	case CwdChanged:
		return Prefix + "cwd;path=" + ev.Path
	case AIExplain:
		return Prefix + "ai;explain=" + ev.Text
	case AISuggest:
		return Prefix + "ai;suggest=" + ev.Query
	case AgentRequest:
		return Prefix + "agent;name=" + ev.Name + ";command=" + ev.Command
	case Features:
		return Prefix + "features;blocks=" + boolBit(ev.Blocks) + ";ai=" + boolBit(ev.AI) + ";agents=" + boolBit(ev.Agents)
	case Unknown:
		return ev.Raw
	default:
		return ""
	}
}

func boolBit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
