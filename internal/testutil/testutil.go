// Package testutil holds deterministic helpers shared by package tests.
package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/tablediff/internal/table"
)

// Table builds a table from headers and rows, failing the test on a
// malformed shape.
func Table(t testing.TB, headers []string, rows ...[]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRows(headers, rows)
	require.NoError(t, err)
	return tbl
}

// FixedTraceGenerator returns predetermined trace IDs for testing.
//
// This enables byte-identical JSON output for golden comparison. IDs are
// returned in order; once they run out the last one repeats. With no IDs,
// Generate returns "test-trace-default".
//
// Thread-safety: FixedTraceGenerator is safe for concurrent use via internal mutex.
type FixedTraceGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedTraceGenerator creates a generator that returns ids in order.
func NewFixedTraceGenerator(ids ...string) *FixedTraceGenerator {
	if len(ids) == 0 {
		ids = []string{"test-trace-default"}
	}
	return &FixedTraceGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
func (g *FixedTraceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.ids[g.idx]
	if g.idx < len(g.ids)-1 {
		g.idx++
	}
	return id
}
