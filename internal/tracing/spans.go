package tracing

// Span attribute keys for block-lifecycle tracing. These constants define
// the semantic conventions for span attributes covering the integrator,
// block manager, and dispatch outbox. Those packages do not import
// internal/tracing and emit no spans themselves.
const (
	// Block attributes
	AttrBlockID      = "block.id"
	AttrBlockCommand = "block.command"
	AttrBlockState   = "block.state"
	AttrBlockExit    = "block.exit_code"

	// Pane attributes
	AttrPaneID  = "pane.id"
	AttrPaneCwd = "pane.cwd"

	// Extension-sequence attributes
	AttrEventKind  = "cx_event.kind"
	AttrRawPayload = "cx_event.raw"

	// Dispatch attributes
	AttrDispatchTarget = "dispatch.target"
	AttrDispatchKind   = "dispatch.kind"
	AttrRequestID      = "dispatch.request_id"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// SpanKind constants for categorizing span types.
const (
	SpanKindBlock      = "block"
	SpanKindParser     = "parser"
	SpanKindLayout     = "layout"
	SpanKindOverlay    = "overlay"
	SpanKindIntegrator = "integrator"
	SpanKindDispatch   = "dispatch"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixBlock      = "block."
	SpanPrefixParser     = "parser."
	SpanPrefixIntegrator = "integrator."
	SpanPrefixDispatch   = "dispatch."
)

// Event names for span events.
const (
	EventBlockStarted     = "block.started"
	EventBlockCompleted   = "block.completed"
	EventBlockInterrupted = "block.interrupted"
	EventBlockEvicted     = "block.evicted"
	EventExtensionParsed  = "cx_event.parsed"
	EventExtensionIgnored = "cx_event.ignored"
	EventDispatchQueued   = "dispatch.queued"
	EventDispatchDropped  = "dispatch.dropped"
	EventErrorOccurred    = "error.occurred"
)
