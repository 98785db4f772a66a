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

// Package k8s runs solver plans as Kubernetes Jobs.
//
// Each plan becomes a single-completion Job in the configured namespace.
// The Job's pod logs carry the compute messages back, since the project
// directory is not shared with the host. The package is separate from
// pkg/executor so that callers that never touch a cluster do not pull
// client-go into their build.
package k8s
