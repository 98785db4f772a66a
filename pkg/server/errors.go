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
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	raserrors "github.com/hydrostack/ras-compute/pkg/errors"
	"github.com/hydrostack/ras-compute/pkg/serializer"
)

// ErrorResponse is the JSON error body returned by all API endpoints.
type ErrorResponse struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"requestId"`
	Timestamp time.Time      `json:"timestamp"`
	Retryable bool           `json:"retryable"`
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// writeStructuredError maps a StructuredError onto the corresponding HTTP
// status. Non-structured errors become 500s with no internal detail leaked.
func (s *Server) writeStructuredError(w http.ResponseWriter, r *http.Request, err error) {
	var se *raserrors.StructuredError
	if !errors.As(err, &se) {
		s.writeError(w, r, http.StatusInternalServerError,
			string(raserrors.ErrCodeInternal), "internal server error", true, nil)
		return
	}

	status := http.StatusInternalServerError
	retryable := true
	switch se.Code {
	case raserrors.ErrCodeNotFound:
		status = http.StatusNotFound
		retryable = false
	case raserrors.ErrCodeInvalidRequest:
		status = http.StatusBadRequest
		retryable = false
	case raserrors.ErrCodeMethodNotAllowed:
		status = http.StatusMethodNotAllowed
		retryable = false
	case raserrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	case raserrors.ErrCodeRateLimitExceeded:
		status = http.StatusTooManyRequests
	case raserrors.ErrCodeUnavailable:
		status = http.StatusServiceUnavailable
	}

	s.writeError(w, r, status, string(se.Code), se.Message, retryable, se.Context)
}
