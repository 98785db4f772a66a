/*
Copyright © 2025 Hydrostack Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hydrostack/ras-compute/pkg/config"
	"github.com/hydrostack/ras-compute/pkg/executor"
	"github.com/hydrostack/ras-compute/pkg/executor/k8s"
	"github.com/hydrostack/ras-compute/pkg/orchestrator"
	"github.com/hydrostack/ras-compute/pkg/store"
)

func runCmd() *cli.Command {
	return &cli.Command{
		Name:                  "run",
		EnableShellCompletion: true,
		Usage:                 "Run the configured plans and report per-plan results",
		Description: `Run every plan in the project configuration through the configured
executor backend:
  - local: the solver binary on this machine
  - docker: a solver container with the project directory bind-mounted
  - k8s: a Kubernetes Job per plan

Plans run in parallel up to max_parallel. Each plan's compute messages are
parsed into a results row; the command fails when any plan does not reach a
clean completion. With history_db configured, the batch is recorded.

# Examples

Run with results as CSV:
  rasctl run --config project.yaml --format csv --output results.csv

Run a batch against a cluster:
  RAS_EXECUTOR=k8s RAS_IMAGE=ghcr.io/hydrostack/ras:6.5 rasctl run -c project.yaml`,
		Flags: []cli.Flag{
			configFlag,
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			exec, err := buildExecutor(cfg)
			if err != nil {
				return fmt.Errorf("failed to build executor: %w", err)
			}

			run, err := orchestrator.New(cfg, exec).RunAll(ctx)
			if err != nil {
				return fmt.Errorf("batch run failed: %w", err)
			}

			if cfg.HistoryDB != "" {
				if err := recordRun(ctx, cfg.HistoryDB, run); err != nil {
					// History is best-effort; the results still get written.
					slog.Warn("failed to record run history", slog.Any("error", err))
				}
			}

			w, err := newWriter(cmd)
			if err != nil {
				return err
			}
			defer w.Close() //nolint:errcheck

			if err := w.Serialize(ctx, run.Result.Table()); err != nil {
				return err
			}

			if !run.Result.AllSuccessful() {
				var failed []string
				for _, plan := range run.Result.Plans() {
					if ok, _ := run.Result.Get(plan); !ok {
						failed = append(failed, plan)
					}
				}
				return fmt.Errorf("plans failed: %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
}

// buildExecutor selects the backend for the configured executor kind.
func buildExecutor(cfg *config.Config) (executor.Executor, error) {
	if cfg.Executor.Kind == config.ExecutorK8s {
		return k8s.NewRunner(cfg)
	}
	return executor.New(cfg)
}

func recordRun(ctx context.Context, dbPath string, run *orchestrator.Run) error {
	st, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	return st.Record(ctx, run)
}
