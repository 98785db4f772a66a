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

// Package server exposes compute-message parsing and run history over HTTP.
//
// Endpoints:
//
//	GET  /healthz      liveness probe
//	GET  /readyz       readiness probe
//	GET  /metrics      Prometheus metrics
//	POST /v1/parse     parse a compute-message body into a results row
//	GET  /v1/runs      list recorded batch runs
//	GET  /v1/runs/{id} one batch run with per-plan detail
//
// API endpoints pass through a middleware chain: metrics, request ID,
// panic recovery, rate limiting, and request logging. When running under
// systemd, the server notifies readiness and shutdown via sd_notify.
package server
