// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	merrors "mural/cli/internal/errors"
	"mural/cli/internal/logging"
)

var (
	// ErrRequestFailed matches every RequestError via errors.Is.
	ErrRequestFailed = errors.New("request failed")
	// ErrMissingToken is returned when a call that needs a bearer token gets none.
	// No request is sent in that case.
	ErrMissingToken = merrors.New(merrors.Precondition, "a session token is required")
)

// RequestError is the single failure condition for backend calls. It is not
// classified by status code; Status is informational only (0 for transport errors).
type RequestError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: request failed: %d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: request failed: %s", e.Op, e.Message)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRequestFailed) match any RequestError.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// ErrorKind categorizes the error for internal/errors.KindOf.
func (e *RequestError) ErrorKind() merrors.Kind { return merrors.RequestFailed }

func transportError(op string, err error) error {
	return &RequestError{Op: op, Message: err.Error(), Err: err}
}

// statusError builds a RequestError from a non-success response body. The backend
// usually answers with {"message": "..."} or {"error": "..."}; anything else is
// reported verbatim (trimmed).
func statusError(op string, status int, body []byte) error {
	msg := messageFromBody(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &RequestError{Op: op, Status: status, Message: msg}
}

func messageFromBody(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, k := range []string{"message", "error", "msg"} {
			if v, ok := payload[k].(string); ok && strings.TrimSpace(v) != "" {
				return strings.TrimSpace(v)
			}
		}
	}
	return logging.Truncate(strings.TrimSpace(string(body)), 200)
}
