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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hydrostack/ras-compute/pkg/config"
)

// Execution is the captured outcome of one solver run attempt.
type Execution struct {
	// Plan is the plan that was run.
	Plan config.Plan

	// ExitCode is the solver process exit code. Zero does not imply a
	// clean run; the compute messages are authoritative.
	ExitCode int

	// Output is the combined stdout/stderr of the process.
	Output string

	// Messages is the compute-message text. When the companion message
	// file is missing the captured output is used instead.
	Messages string

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// Executor runs a single plan to completion.
type Executor interface {
	// Execute runs the plan and captures its outcome. It returns an error
	// only when the solver could not be run; context cancellation counts
	// as such an error.
	Execute(ctx context.Context, plan config.Plan) (*Execution, error)

	// Kind identifies the backend.
	Kind() config.ExecutorKind
}

// New builds the executor selected by the configuration.
// The k8s backend is constructed by pkg/executor/k8s to keep client-go out
// of this package's dependency surface; New returns an error for it.
func New(cfg *config.Config) (Executor, error) {
	switch cfg.Executor.Kind {
	case config.ExecutorLocal:
		return NewLocal(cfg.Executor.Binary, cfg.Project, cfg.Executor.RunTimeout), nil
	case config.ExecutorDocker:
		return NewDocker(cfg.Executor.Image, cfg.Project, cfg.Executor.RunTimeout)
	case config.ExecutorK8s:
		return nil, fmt.Errorf("k8s executor must be built with executor/k8s.NewRunner")
	default:
		return nil, fmt.Errorf("unknown executor kind: %q", cfg.Executor.Kind)
	}
}

// messagesPath returns the companion compute-message file for a plan, or
// empty when the plan has no file.
func messagesPath(project string, plan config.Plan) string {
	if plan.File == "" {
		return ""
	}
	return filepath.Join(project, plan.File+".computeMsgs.txt")
}

// readMessages loads the compute-message text for a plan, falling back to
// the captured output when the companion file is missing or empty. A
// missing message file degrades the result, it does not fail the run.
func readMessages(project string, plan config.Plan, fallback string) string {
	path := messagesPath(project, plan)
	if path == "" {
		return fallback
	}
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return fallback
	}
	return string(data)
}
