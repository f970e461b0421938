// Package diagnostics stamps every planning run with a unique run ID and
// collects the per-component counters a finished run reports: grounding
// size, match-tree size, states expanded/generated.
package diagnostics

import "github.com/google/uuid"

// RunID is a run's unique identifier, threaded through log fields so a
// concurrent fleet of planning runs (package runpool) can be told apart in
// aggregated logs.
type RunID string

// NewRunID mints a fresh run ID.
func NewRunID() RunID {
	return RunID(uuid.NewString())
}

// Counters is the set of size/throughput numbers a single planning run
// reports once it finishes.
type Counters struct {
	GroundActions   int
	GroundAxioms    int
	Strata          int
	MatchTreeNodes  int
	StatesExpanded  int
	StatesGenerated int
	StatesInterned  int
}

// Report bundles a run's identity and final counters for structured
// logging or machine-readable output.
type Report struct {
	RunID    RunID
	Counters Counters
}
