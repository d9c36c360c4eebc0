// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package httperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"mural/cli/internal/backend"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"status", &backend.RequestError{Op: "list posts", Status: 500, Message: "boom"}, "response"},
		{"status 401 is not special", &backend.RequestError{Op: "login", Status: 401, Message: "invalid"}, "response"},
		{"deadline", &backend.RequestError{Op: "list posts", Err: context.DeadlineExceeded, Message: context.DeadlineExceeded.Error()}, "timeout"},
		{"dns", fmt.Errorf("get: %w", &net.DNSError{Err: "no such host", Name: "api.escola"}), "dns"},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, "refused"},
		{"tls", errors.New("x509: certificate signed by unknown authority"), "tls"},
		{"other", errors.New("unexpected EOF"), "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestFormatNetworkErrorWraps(t *testing.T) {
	cause := &backend.RequestError{Op: "delete post", Status: 403, Message: "forbidden"}
	err := FormatNetworkError(cause, "deleting the post", "localhost:3000")
	assert.ErrorIs(t, err, backend.ErrRequestFailed)
	assert.Contains(t, err.Error(), "deleting the post")
	assert.NoError(t, FormatNetworkError(nil, "x", ""))
}

func TestExtractHostFromURL(t *testing.T) {
	assert.Equal(t, "api.escola.br:8080", ExtractHostFromURL("https://api.escola.br:8080/v1"))
	assert.Equal(t, "server", ExtractHostFromURL("not a url"))
}
