package cli

import (
	"github.com/google/uuid"
)

// TraceIDGenerator generates the trace_id that correlates a command's JSON
// response with its log lines.
// Implemented by UUIDv7Generator (production) and testutil.FixedTraceGenerator (tests).
type TraceIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 trace IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so IDs sort by
// creation time when log lines from several runs are merged.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
