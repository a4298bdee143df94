package store

import "time"

// Run is one persisted analysis snapshot.
type Run struct {
	ID        string    `json:"id"`
	Root      string    `json:"root"`
	CreatedAt time.Time `json:"created_at"`
	FileCount int       `json:"file_count"`
}

// FlowRecord is a persisted causality flow, flattened for storage with its
// owning file path joined in.
type FlowRecord struct {
	ID          int64            `json:"id"`
	FileID      int64            `json:"-"`
	Path        string           `json:"path"`
	Ordinal     int              `json:"-"`
	Context     string           `json:"context"`
	ElementType string           `json:"element_type"`
	Label       *string          `json:"label,omitempty"`
	ResponseVar *string          `json:"response_var,omitempty"`
	ActionType  string           `json:"action_type"`
	Source      string           `json:"source"`
	Mutations   []MutationRecord `json:"mutations"`
}

// MutationRecord is one persisted state mutation of a flow.
type MutationRecord struct {
	ID           int64  `json:"-"`
	FlowID       int64  `json:"-"`
	Ordinal      int    `json:"-"`
	Target       string `json:"target"`
	MutationType string `json:"mutation_type"`
}

// RunDiff reports the flows that appeared and disappeared between two runs.
type RunDiff struct {
	OldRun  string       `json:"old_run"`
	NewRun  string       `json:"new_run"`
	Added   []FlowRecord `json:"added"`
	Removed []FlowRecord `json:"removed"`
}
