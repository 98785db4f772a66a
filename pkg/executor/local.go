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

package executor

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"

	"github.com/hydrostack/ras-compute/pkg/config"
	raserrors "github.com/hydrostack/ras-compute/pkg/errors"
)

// Local runs the solver binary directly on this machine.
type Local struct {
	binary  string
	project string
	timeout time.Duration
}

// NewLocal creates a local executor for the given solver binary and project
// directory.
func NewLocal(binary, project string, timeout time.Duration) *Local {
	return &Local{
		binary:  binary,
		project: project,
		timeout: timeout,
	}
}

// Kind implements the Executor interface.
func (l *Local) Kind() config.ExecutorKind {
	return config.ExecutorLocal
}

// Execute runs the plan with the solver binary, working in the project
// directory so the solver writes its companion files next to the plan.
func (l *Local) Execute(ctx context.Context, plan config.Plan) (*Execution, error) {
	runCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	args := make([]string, 0, len(plan.Args)+1)
	if plan.File != "" {
		args = append(args, plan.File)
	}
	args = append(args, plan.Args...)

	slog.Debug("starting solver process",
		slog.String("plan", plan.Number),
		slog.String("binary", l.binary),
	)

	start := time.Now()
	cmd := exec.CommandContext(runCtx, l.binary, args...)
	cmd.Dir = l.project
	output, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Solver ran and exited nonzero; the messages decide the outcome.
			exitCode = exitErr.ExitCode()
		} else {
			return nil, raserrors.WrapWithContext(
				raserrors.ErrCodeExecutionFailed,
				"failed to run solver",
				err,
				map[string]any{"plan": plan.Number, "binary": l.binary},
			)
		}
	}

	exe := &Execution{
		Plan:     plan,
		ExitCode: exitCode,
		Output:   string(output),
		Messages: readMessages(l.project, plan, string(output)),
		Duration: elapsed,
	}

	slog.Debug("solver process finished",
		slog.String("plan", plan.Number),
		slog.Int("exit_code", exitCode),
		slog.Duration("duration", elapsed),
	)
	return exe, nil
}
