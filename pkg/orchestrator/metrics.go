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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Batch-level metrics
	batchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ras_batch_duration_seconds",
			Help:    "Time taken to run a complete plan batch",
			Buckets: []float64{1, 10, 60, 300, 600, 1800, 3600, 7200},
		},
	)

	batchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ras_batch_total",
			Help: "Total number of plan batches run",
		},
		[]string{"status"}, // success or error
	)

	planDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ras_plan_duration_seconds",
			Help:    "Time taken by individual plan runs",
			Buckets: []float64{1, 10, 60, 300, 600, 1800, 3600},
		},
		[]string{"executor"}, // local, docker, k8s
	)

	planTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ras_plan_total",
			Help: "Total number of plan runs",
		},
		[]string{"status"}, // success, failed, or error
	)

	planErrorCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ras_plan_errors",
			Help: "Number of solver error lines in the last batch",
		},
	)
)
