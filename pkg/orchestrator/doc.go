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

// Package orchestrator fans plans out to an executor and folds the outcomes
// into a batch result.
//
// Plans run in parallel, bounded by the configured concurrency limit and a
// submission rate limiter. A plan whose run could not even start still gets
// an entry in the batch result; one bad plan never aborts the batch.
package orchestrator
