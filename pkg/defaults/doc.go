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

// Package defaults provides centralized configuration constants for the
// ras-compute system.
//
// This package defines timeout values and other configuration defaults used
// across the codebase. Centralizing these values ensures consistency and
// makes tuning easier.
//
// Timeouts are organized by component:
//
//   - Executor timeouts: for solver process execution
//   - Server timeouts: for HTTP server configuration
//   - Kubernetes timeouts: for Job deployment and completion
//
// Import and use constants directly:
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.SolverRunTimeout)
//	defer cancel()
package defaults
