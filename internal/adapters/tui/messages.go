package tui

import "time"

// MsgInitPlan initializes or resets the delta list in the UI.
type MsgInitPlan struct {
	Deltas []string
	Stages map[string][]string
	Target string
}

// MsgDeltaStart indicates a delta (span) has started.
type MsgDeltaStart struct {
	SpanID    string
	ParentID  string // May be empty if root
	Name      string
	StartTime time.Time
}

// MsgDeltaLog carries a chunk of log output for a specific delta.
type MsgDeltaLog struct {
	SpanID string
	Data   []byte
}

// MsgDeltaComplete indicates a delta (span) has finished.
type MsgDeltaComplete struct {
	SpanID  string
	EndTime time.Time
	Err     error
}
