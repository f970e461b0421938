// Package planrun wires grounding, axiom evaluation, state interning and
// search into the one pipeline both cmd/mimir-brfs and cmd/mimir-astar run,
// centralizing the wiring behind a small package rather than duplicating it
// per binary.
package planrun

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/simon-stahlberg/mimir-sub004/internal/clock"
	"github.com/simon-stahlberg/mimir-sub004/internal/config"
	"github.com/simon-stahlberg/mimir-sub004/internal/diagnostics"
	"github.com/simon-stahlberg/mimir-sub004/pkg/axiom"
	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/grounding"
	"github.com/simon-stahlberg/mimir-sub004/pkg/matchtree"
	"github.com/simon-stahlberg/mimir-sub004/pkg/search"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
	"go.uber.org/zap"
)

// EvaluatorKind selects which of the two axiom evaluators
// closes derived predicates during search.
type EvaluatorKind string

const (
	EvaluatorGrounded EvaluatorKind = "grounded"
	EvaluatorLifted   EvaluatorKind = "lifted"
)

// Budget bounds one search invocation.
type Budget struct {
	TimeLimit time.Duration
	MaxStates int
}

// Options configures one Run call.
type Options struct {
	Policy    search.PriorityPolicy
	Heuristic search.Heuristic
	Pruning   search.PruningStrategy // nil means search.DuplicatePruning
	Evaluator EvaluatorKind
	BuildOpts matchtree.BuildOptions
	Budget    Budget

	// DumpMatchTreeDOT, when non-empty, writes the action match tree's
	// Graphviz rendering to this path before the search starts.
	DumpMatchTreeDOT string
}

// Outcome is everything a CLI command needs to report after one run.
type Outcome struct {
	Result search.Result
	Report diagnostics.Report
}

// BuildOptionsFromConfig translates a loaded config.Search into match-tree
// BuildOptions, starting from matchtree.DefaultBuildOptions.
// PreferAtomsOverNumeric is always taken from the config; MaxNumNodes only
// when the config value is positive; Strategy becomes StrategyFrequency only
// when split_metric is "frequency" and otherwise keeps the default.
func BuildOptionsFromConfig(cfg config.Config) matchtree.BuildOptions {
	opts := matchtree.DefaultBuildOptions()
	opts.PreferAtomsOverNumeric = cfg.Search.PreferAtomsOverNumeric
	if cfg.Search.MaxMatchTreeNodes > 0 {
		opts.MaxNumNodes = cfg.Search.MaxMatchTreeNodes
	}
	if cfg.Search.SplitMetric == "frequency" {
		opts.Strategy = matchtree.StrategyFrequency
	}
	return opts
}

// BudgetFromConfig translates a loaded config.Search into a Budget.
func BudgetFromConfig(cfg config.Config) Budget {
	return Budget{TimeLimit: cfg.Search.TimeLimit, MaxStates: cfg.Search.MaxStates}
}

// Run grounds problem, builds the requested axiom evaluator and a state
// repository over it, then drives a single search to completion.
// Cancelling ctx stops the search cooperatively at the next loop head.
// logger receives one structured event per pipeline stage so a run can be
// followed in production logs.
func Run(ctx context.Context, problem *formalism.Problem, opts Options, logger *zap.Logger) (Outcome, error) {
	runID := diagnostics.NewRunID()
	logger = logger.With(zap.String("run_id", string(runID)))

	logger.Info("grounding")
	result, err := grounding.Ground(problem)
	if err != nil {
		return Outcome{}, fmt.Errorf("planrun: ground: %w", err)
	}
	logger.Info("grounded",
		zap.Int("actions", len(result.Actions)),
		zap.Int("axioms", len(result.Axioms)),
		zap.Int("strata", result.Strata))

	var closer state.AxiomCloser
	switch opts.Evaluator {
	case EvaluatorLifted:
		closer = axiom.NewLiftedEvaluator(result.Axioms, result.Strata)
	default:
		closer = axiom.NewGroundedEvaluator(result.Axioms, result.Strata, opts.BuildOpts)
	}

	states := state.NewRepository(problem, closer)
	driver := search.NewDriver(problem, states, result.Actions, opts.BuildOpts)

	if opts.DumpMatchTreeDOT != "" {
		if err := os.WriteFile(opts.DumpMatchTreeDOT, []byte(driver.MatchTreeDOT()), 0o644); err != nil {
			return Outcome{}, fmt.Errorf("planrun: dump match tree: %w", err)
		}
	}

	deadline := clock.Budget{TimeLimit: opts.Budget.TimeLimit}.Deadline(time.Now())
	searchResult := driver.Search(search.Options{
		Policy:    opts.Policy,
		Heuristic: opts.Heuristic,
		Pruning:   opts.Pruning,
		Deadline:  deadline,
		MaxStates: opts.Budget.MaxStates,
		Cancel:    ctx.Done(),
	})

	logger.Info("search finished",
		zap.String("status", searchResult.Status.String()),
		zap.Float64("cost", searchResult.Cost),
		zap.Int("expanded", searchResult.Expanded),
		zap.Int("generated", searchResult.Generated))

	report := diagnostics.Report{
		RunID: runID,
		Counters: diagnostics.Counters{
			GroundActions:   len(result.Actions),
			GroundAxioms:    len(result.Axioms),
			Strata:          result.Strata,
			MatchTreeNodes:  driver.MatchTreeNodes(),
			StatesExpanded:  searchResult.Expanded,
			StatesGenerated: searchResult.Generated,
			StatesInterned:  states.Len(),
		},
	}
	return Outcome{Result: searchResult, Report: report}, nil
}
