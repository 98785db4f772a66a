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

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/hydrostack/ras-compute/pkg/defaults"
)

// ExecutorKind selects how solver processes are run.
type ExecutorKind string

const (
	// ExecutorLocal runs the solver binary directly on this machine.
	ExecutorLocal ExecutorKind = "local"
	// ExecutorDocker runs the solver inside a container.
	ExecutorDocker ExecutorKind = "docker"
	// ExecutorK8s runs the solver as a Kubernetes Job.
	ExecutorK8s ExecutorKind = "k8s"
)

// Kinds is the list of supported executor kinds.
var Kinds = []ExecutorKind{ExecutorLocal, ExecutorDocker, ExecutorK8s}

// Plan describes one simulation configuration to run.
type Plan struct {
	// Number is the plan number, e.g. "01". It keys the results table.
	Number string `yaml:"number"`

	// Title is the human-readable plan title.
	Title string `yaml:"title,omitempty"`

	// File is the plan file within the project directory.
	File string `yaml:"file,omitempty"`

	// Args are extra solver arguments for this plan.
	Args []string `yaml:"args,omitempty"`
}

// Executor holds the settings of the selected execution backend.
type Executor struct {
	// Kind selects the backend: local, docker, or k8s.
	Kind ExecutorKind `yaml:"kind" env:"RAS_EXECUTOR"`

	// Binary is the solver executable for the local backend.
	Binary string `yaml:"binary,omitempty" env:"RAS_BINARY"`

	// Image is the solver container image for docker and k8s backends.
	Image string `yaml:"image,omitempty" env:"RAS_IMAGE"`

	// Namespace is the Kubernetes namespace for the k8s backend.
	Namespace string `yaml:"namespace,omitempty" env:"RAS_NAMESPACE"`

	// Kubeconfig is the kubeconfig path for the k8s backend; empty uses
	// in-cluster or default loading rules.
	Kubeconfig string `yaml:"kubeconfig,omitempty" env:"RAS_KUBECONFIG"`

	// RunTimeout is the wall-clock limit per plan run.
	RunTimeout time.Duration `yaml:"run_timeout,omitempty" env:"RAS_RUN_TIMEOUT"`
}

// Config is the root project configuration.
type Config struct {
	// Project is the path to the HEC-RAS project directory.
	Project string `yaml:"project" env:"RAS_PROJECT"`

	// Plans are the plans to execute.
	Plans []Plan `yaml:"plans"`

	Executor Executor `yaml:"executor"`

	// MaxParallel bounds concurrent plan runs. Zero means unbounded.
	MaxParallel int `yaml:"max_parallel,omitempty" env:"RAS_MAX_PARALLEL"`

	// SubmitRate limits run submissions per second. Zero disables the
	// limiter.
	SubmitRate float64 `yaml:"submit_rate,omitempty" env:"RAS_SUBMIT_RATE"`

	// HistoryDB is the path of the run-history database; empty disables
	// history recording.
	HistoryDB string `yaml:"history_db,omitempty" env:"RAS_HISTORY_DB"`
}

// Load reads the YAML configuration file at path and applies environment
// overrides on top of it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration bytes and applies environment overrides.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{
		Executor: Executor{
			Kind:       ExecutorLocal,
			RunTimeout: defaults.SolverRunTimeout,
		},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Environment wins over file values.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if cfg.Executor.RunTimeout <= 0 {
		cfg.Executor.RunTimeout = defaults.SolverRunTimeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration is complete enough to run.
func (c *Config) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("project directory is required")
	}
	if len(c.Plans) == 0 {
		return fmt.Errorf("at least one plan is required")
	}
	seen := make(map[string]bool, len(c.Plans))
	for i, p := range c.Plans {
		if p.Number == "" {
			return fmt.Errorf("plan[%d]: number is required", i)
		}
		if seen[p.Number] {
			return fmt.Errorf("plan[%d]: duplicate plan number %q", i, p.Number)
		}
		seen[p.Number] = true
	}

	switch c.Executor.Kind {
	case ExecutorLocal:
		if c.Executor.Binary == "" {
			return fmt.Errorf("executor.binary is required for the local executor")
		}
	case ExecutorDocker:
		if c.Executor.Image == "" {
			return fmt.Errorf("executor.image is required for the docker executor")
		}
	case ExecutorK8s:
		if c.Executor.Image == "" {
			return fmt.Errorf("executor.image is required for the k8s executor")
		}
	default:
		return fmt.Errorf("unknown executor kind: %q", c.Executor.Kind)
	}

	if c.MaxParallel < 0 {
		return fmt.Errorf("max_parallel cannot be negative")
	}
	if c.SubmitRate < 0 {
		return fmt.Errorf("submit_rate cannot be negative")
	}
	return nil
}
