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

package defaults

import "time"

// Executor timeouts for solver process execution.
const (
	// SolverRunTimeout is the default wall-clock limit for a single plan
	// run. Unsteady simulations on large geometries routinely take tens of
	// minutes; executors should respect parent context deadlines when
	// shorter.
	SolverRunTimeout = 2 * time.Hour

	// SolverShutdownGrace is how long an executor waits after cancellation
	// before killing the solver process group.
	SolverShutdownGrace = 10 * time.Second

	// DockerPullTimeout is the limit for pulling the solver image before a
	// container run.
	DockerPullTimeout = 10 * time.Minute
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Kubernetes timeouts for Job-based remote execution.
const (
	// K8sJobCreationTimeout is the timeout for creating K8s Job resources.
	K8sJobCreationTimeout = 30 * time.Second

	// K8sJobCompletionTimeout is the default timeout for job completion.
	// Matches SolverRunTimeout since the job wraps a solver run.
	K8sJobCompletionTimeout = 2 * time.Hour

	// K8sJobPollInterval is how often job status is polled while waiting.
	K8sJobPollInterval = 5 * time.Second

	// K8sCleanupTimeout is the timeout for cleanup operations.
	K8sCleanupTimeout = 30 * time.Second
)

// Store defaults for the run-history database.
const (
	// StoreBusyTimeout is the SQLite busy handler timeout.
	StoreBusyTimeout = 5 * time.Second

	// StoreHistoryLimit is the default number of runs returned by listings.
	StoreHistoryLimit = 50
)
