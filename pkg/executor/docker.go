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
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/distribution/reference"

	"github.com/hydrostack/ras-compute/pkg/config"
	raserrors "github.com/hydrostack/ras-compute/pkg/errors"
)

// containerProjectDir is where the project directory is mounted inside the
// solver container.
const containerProjectDir = "/project"

// Docker runs the solver inside a container, bind-mounting the project
// directory so message files land back on the host.
type Docker struct {
	image   string
	project string
	timeout time.Duration
}

// NewDocker creates a docker executor. The image reference is validated and
// normalized up front so a bad reference fails at configuration time rather
// than mid-batch.
func NewDocker(image, project string, timeout time.Duration) (*Docker, error) {
	named, err := reference.ParseNormalizedNamed(image)
	if err != nil {
		return nil, fmt.Errorf("invalid solver image reference %q: %w", image, err)
	}

	abs, err := filepath.Abs(project)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory %q: %w", project, err)
	}

	return &Docker{
		image:   reference.FamiliarString(reference.TagNameOnly(named)),
		project: abs,
		timeout: timeout,
	}, nil
}

// Kind implements the Executor interface.
func (d *Docker) Kind() config.ExecutorKind {
	return config.ExecutorDocker
}

// Execute runs the plan in a disposable container.
func (d *Docker) Execute(ctx context.Context, plan config.Plan) (*Execution, error) {
	if _, err := exec.LookPath("docker"); err != nil {
		return nil, raserrors.Wrap(
			raserrors.ErrCodeExecutionFailed,
			"docker not found in PATH",
			err,
		)
	}

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	args := []string{
		"run", "--rm",
		"-v", fmt.Sprintf("%s:%s", d.project, containerProjectDir),
		"-w", containerProjectDir,
		d.image,
	}
	if plan.File != "" {
		args = append(args, plan.File)
	}
	args = append(args, plan.Args...)

	slog.Debug("starting solver container",
		slog.String("plan", plan.Number),
		slog.String("image", d.image),
	)

	start := time.Now()
	cmd := exec.CommandContext(runCtx, "docker", args...)
	output, err := cmd.CombinedOutput()
	elapsed := time.Since(start)

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return nil, raserrors.WrapWithContext(
				raserrors.ErrCodeExecutionFailed,
				"failed to run solver container",
				err,
				map[string]any{"plan": plan.Number, "image": d.image},
			)
		}
	}

	exe := &Execution{
		Plan:     plan,
		ExitCode: exitCode,
		Output:   string(output),
		Messages: readMessages(d.project, plan, string(output)),
		Duration: elapsed,
	}

	slog.Debug("solver container finished",
		slog.String("plan", plan.Number),
		slog.Int("exit_code", exitCode),
		slog.Duration("duration", elapsed),
	)
	return exe, nil
}
