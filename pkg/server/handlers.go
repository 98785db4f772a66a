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

package server

import (
	"io"
	"net/http"
	"strconv"

	raserrors "github.com/hydrostack/ras-compute/pkg/errors"
	"github.com/hydrostack/ras-compute/pkg/messages"
	"github.com/hydrostack/ras-compute/pkg/result"
	"github.com/hydrostack/ras-compute/pkg/serializer"
)

// ParseResponse is the body returned by POST /v1/parse.
type ParseResponse struct {
	Success bool       `json:"success"`
	Row     result.Row `json:"row"`
}

// handleParse handles POST /v1/parse. The request body is the raw
// compute-message text; optional query parameters plan and title are echoed
// into the resulting row.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxParseBytes))
	if err != nil {
		s.writeStructuredError(w, r, raserrors.Wrap(
			raserrors.ErrCodeInvalidRequest, "failed to read request body", err))
		return
	}
	if len(body) == 0 {
		s.writeStructuredError(w, r, raserrors.New(
			raserrors.ErrCodeInvalidRequest, "request body is empty"))
		return
	}

	text := string(body)
	summary := messages.Parse(text)
	runtime := messages.ParseRuntime(text)

	row := result.NewRow(r.URL.Query().Get("plan"), summary, &runtime)
	row.Title = r.URL.Query().Get("title")

	resp := ParseResponse{
		Success: messages.IsSuccessfulCompletion(text) && !summary.HasErrors,
		Row:     row,
	}
	serializer.RespondJSON(w, http.StatusOK, resp)
}

// handleRuns handles GET /v1/runs. The limit query parameter caps the number
// of returned runs.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeStructuredError(w, r, raserrors.New(
			raserrors.ErrCodeUnavailable, "run history is not configured"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeStructuredError(w, r, raserrors.NewWithContext(
				raserrors.ErrCodeInvalidRequest, "invalid limit",
				map[string]any{"limit": v}))
			return
		}
		limit = n
	}

	records, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.writeStructuredError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, records)
}

// handleRun handles GET /v1/runs/{id}.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.writeStructuredError(w, r, raserrors.New(
			raserrors.ErrCodeUnavailable, "run history is not configured"))
		return
	}

	rec, err := s.history.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeStructuredError(w, r, err)
		return
	}
	serializer.RespondJSON(w, http.StatusOK, rec)
}
