// Copyright (c) 2025, Hydrostack Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hydrostack/ras-compute/pkg/config"
	"github.com/hydrostack/ras-compute/pkg/executor"
	"github.com/hydrostack/ras-compute/pkg/messages"
	"github.com/hydrostack/ras-compute/pkg/result"
)

// Run is the recorded outcome of one batch of plan runs.
type Run struct {
	// ID uniquely identifies the batch.
	ID string `json:"id" yaml:"id"`

	// Project is the project directory the batch ran against.
	Project string `json:"project" yaml:"project"`

	// StartedAt is when the batch began.
	StartedAt time.Time `json:"started_at" yaml:"started_at"`

	// Duration is the wall-clock time of the whole batch.
	Duration time.Duration `json:"duration" yaml:"duration"`

	// Result holds the per-plan outcomes.
	Result result.ComputeParallelResult `json:"result" yaml:"result"`
}

// Orchestrator runs a configured set of plans through an executor.
type Orchestrator struct {
	cfg     *config.Config
	exec    executor.Executor
	limiter *rate.Limiter
}

// New creates an orchestrator for the given configuration and executor.
func New(cfg *config.Config, exec executor.Executor) *Orchestrator {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.SubmitRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.SubmitRate), 1)
	}
	return &Orchestrator{
		cfg:     cfg,
		exec:    exec,
		limiter: limiter,
	}
}

// RunAll executes every configured plan and folds the outcomes into a single
// batch result. Per-plan failures degrade to unsuccessful entries; RunAll
// returns an error only when the batch as a whole is canceled.
func (o *Orchestrator) RunAll(ctx context.Context) (*Run, error) {
	runID := uuid.NewString()
	start := time.Now()
	defer func() {
		batchDuration.Observe(time.Since(start).Seconds())
	}()

	slog.Info("starting plan batch",
		slog.String("run_id", runID),
		slog.String("project", o.cfg.Project),
		slog.Int("plans", len(o.cfg.Plans)),
	)

	var mu sync.Mutex
	successes := make(map[string]bool, len(o.cfg.Plans))
	table := result.NewTable()

	g, gctx := errgroup.WithContext(ctx)
	if o.cfg.MaxParallel > 0 {
		g.SetLimit(o.cfg.MaxParallel)
	}

	for _, plan := range o.cfg.Plans {
		g.Go(func() error {
			// Pace submissions so a large batch does not slam the backend.
			if err := o.limiter.Wait(gctx); err != nil {
				return err
			}

			cr := o.runOne(gctx, plan)

			mu.Lock()
			successes[plan.Number] = cr.Success
			if cr.Row != nil {
				table.Append(*cr.Row)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		batchTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	run := &Run{
		ID:        runID,
		Project:   o.cfg.Project,
		StartedAt: start,
		Duration:  time.Since(start),
		Result:    result.NewComputeParallelResult(successes, table),
	}

	errorLines := 0
	for _, row := range table.Sorted() {
		errorLines += row.ErrorCount
	}
	planErrorCount.Set(float64(errorLines))
	batchTotal.WithLabelValues("success").Inc()

	slog.Info("plan batch finished",
		slog.String("run_id", runID),
		slog.Bool("all_successful", run.Result.AllSuccessful()),
		slog.Duration("duration", run.Duration),
	)
	return run, nil
}

// runOne executes a single plan and classifies its outcome from the compute
// messages. An executor error yields an unsuccessful result with no row.
func (o *Orchestrator) runOne(ctx context.Context, plan config.Plan) result.ComputeResult {
	planStart := time.Now()
	defer func() {
		planDuration.WithLabelValues(string(o.exec.Kind())).Observe(time.Since(planStart).Seconds())
	}()

	exe, err := o.exec.Execute(ctx, plan)
	if err != nil {
		planTotal.WithLabelValues("error").Inc()
		slog.Error("plan run failed to execute",
			slog.String("plan", plan.Number),
			slog.String("error", err.Error()),
		)
		return result.ComputeResult{Plan: plan.Number, Success: false}
	}

	summary := messages.Parse(exe.Messages)
	runtime := messages.ParseRuntime(exe.Messages)
	success := messages.IsSuccessfulCompletion(exe.Messages) && !summary.HasErrors

	row := result.NewRow(plan.Number, summary, &runtime)
	row.Title = plan.Title

	status := "success"
	if !success {
		status = "failed"
	}
	planTotal.WithLabelValues(status).Inc()

	slog.Info("plan run finished",
		slog.String("plan", plan.Number),
		slog.Bool("success", success),
		slog.Int("exit_code", exe.ExitCode),
		slog.Int("errors", summary.ErrorCount),
		slog.Int("warnings", summary.WarningCount),
		slog.Duration("duration", exe.Duration),
	)

	return result.ComputeResult{
		Plan:    plan.Number,
		Success: success,
		Row:     &row,
	}
}
