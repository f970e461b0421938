// Command mimir-astar runs A* search over one of the bundled example
// problems (PDDL parsing is handled by an external collaborator, so every
// runnable problem ships as an in-Go builder) and writes the resulting plan
// in IPC format.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/simon-stahlberg/mimir-sub004/internal/config"
	"github.com/simon-stahlberg/mimir-sub004/internal/logging"
	"github.com/simon-stahlberg/mimir-sub004/internal/planrun"
	"github.com/simon-stahlberg/mimir-sub004/internal/runpool"
	"github.com/simon-stahlberg/mimir-sub004/pkg/grounding"
	"github.com/simon-stahlberg/mimir-sub004/pkg/matchtree"
	"github.com/simon-stahlberg/mimir-sub004/pkg/plan"
	"github.com/simon-stahlberg/mimir-sub004/pkg/search"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var allExamples = []string{"blocksworld", "gripper", "graphreach"}

// Exit codes follow the de-facto planner convention: 0 solved, 1 argument
// error, 2 unsolvable/exhausted, 3 resource exhausted.
func main() {
	var exit int
	if err := newRootCmd(&exit).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(exit)
}

func newRootCmd(exit *int) *cobra.Command {
	var (
		problemName string
		outPath     string
		configPath  string
		dotPath     string
		all         bool
		parallelism int
		admissible  bool
		noPruning   bool
	)

	cmd := &cobra.Command{
		Use:   "mimir-astar",
		Short: "A* search over a bundled planning problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("mimir-astar: build logger: %w", err)
			}
			defer logger.Sync()

			names := []string{problemName}
			if all {
				names = allExamples
			}

			buildOpts := planrun.BuildOptionsFromConfig(cfg)
			budget := planrun.BudgetFromConfig(cfg)

			pool := runpool.New(parallelism)
			runs := make([]runpool.Run, len(names))
			for i, name := range names {
				name := name
				dot := dotPath
				if dot != "" && len(names) > 1 {
					dot = fmt.Sprintf("%s.%s", dotPath, name)
				}
				runs[i] = func(ctx context.Context) (any, error) {
					return runOne(ctx, name, buildOpts, budget, admissible, noPruning, dot, logger)
				}
			}
			results := pool.RunAll(cmd.Context(), runs)

			for i, r := range results {
				if r.Err != nil {
					fmt.Fprintf(os.Stderr, "%s: %v\n", names[i], r.Err)
					continue
				}
				out := r.Value.(search.Result)
				*exit = worstExit(*exit, out.Status)
				if err := writePlan(out, outPath, names[i], len(names) > 1); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&problemName, "problem", "blocksworld", "bundled example to solve (blocksworld, gripper, graphreach)")
	cmd.Flags().StringVar(&outPath, "out", "", "plan output file (defaults to stdout)")
	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file (see internal/config)")
	cmd.Flags().BoolVar(&all, "all", false, "solve every bundled example concurrently")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "max concurrent runs when --all is set (0 = NumCPU)")
	cmd.Flags().BoolVar(&admissible, "admissible", false, "use the admissible zero heuristic instead of the relaxed-planning-graph estimator")
	cmd.Flags().BoolVar(&noPruning, "no-duplicate-pruning", false, "never discard a re-generated successor (disables duplicate pruning)")
	cmd.Flags().StringVar(&dotPath, "dump-matchtree-dot", "", "write the action match tree as Graphviz DOT to this path")
	return cmd
}

func runOne(ctx context.Context, name string, buildOpts matchtree.BuildOptions, budget planrun.Budget, admissible, noPruning bool, dotPath string, logger *zap.Logger) (search.Result, error) {
	_, problem, err := planrun.LoadInstance(name)
	if err != nil {
		return search.Result{}, err
	}

	var heuristic search.Heuristic = search.ZeroHeuristic{}
	if !admissible {
		groundResult, err := grounding.Ground(problem)
		if err != nil {
			return search.Result{}, fmt.Errorf("mimir-astar: ground for heuristic: %w", err)
		}
		heuristic = search.NewRPGHeuristic(groundResult.Actions, groundResult.Axioms, &problem.Goal)
	}

	opts := planrun.Options{
		Policy:           search.AStarPolicy,
		Heuristic:        heuristic,
		Evaluator:        planrun.EvaluatorGrounded,
		BuildOpts:        buildOpts,
		Budget:           budget,
		DumpMatchTreeDOT: dotPath,
	}
	if noPruning {
		opts.Pruning = search.NoPruning{}
	}
	outcome, err := planrun.Run(ctx, problem, opts, logger)
	if err != nil {
		return search.Result{}, err
	}
	return outcome.Result, nil
}

// worstExit keeps the most severe exit code seen across a batch of runs.
func worstExit(current int, status search.Status) int {
	code := 0
	switch status {
	case search.Exhausted:
		code = 2
	case search.OutOfTime, search.OutOfMemory:
		code = 3
	}
	if code > current {
		return code
	}
	return current
}

func writePlan(out search.Result, outPath, name string, multi bool) error {
	if out.Status != search.Solved {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, out.Status)
		return nil
	}
	path := outPath
	if multi && path != "" {
		path = fmt.Sprintf("%s.%s", outPath, name)
	}
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("mimir-astar: create %s: %w", path, err)
		}
		defer f.Close()
		return plan.Write(f, out.Plan, out.Cost)
	}
	return plan.Write(os.Stdout, out.Plan, out.Cost)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level := logging.Level(cfg.Logging.Level)
	if cfg.Logging.JSON {
		return logging.New(level)
	}
	return logging.NewDevelopment()
}
