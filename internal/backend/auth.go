// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// Credentials is the login and user-creation body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls POST /auth/login with { email, password } and returns the issued token.
// The token is treated as opaque here; decoding happens in the session layer.
func (h *HTTP) Login(ctx context.Context, creds Credentials) (string, error) {
	var result map[string]any
	if err := h.do(ctx, "login", http.MethodPost, h.endpoints.Login, "", creds, &result); err != nil {
		return "", err
	}
	token := extractToken(result)
	if token == "" {
		return "", &RequestError{Op: "login", Status: http.StatusOK, Message: "no token in response", Err: errors.New("no token in response")}
	}
	return token, nil
}

// extractToken extracts the token from the login response payload.
// It tries multiple common field names to be resilient to different response formats.
func extractToken(result map[string]any) string {
	for _, key := range []string{"token", "accessToken", "access_token"} {
		if v, ok := result[key].(string); ok && strings.TrimSpace(v) != "" {
			return parseBearerToken(v)
		}
	}
	if data, ok := result["data"].(map[string]any); ok {
		return extractToken(data)
	}
	return ""
}

// parseBearerToken strips an optional "Bearer " prefix case-insensitively.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) > 7 && strings.EqualFold(v[:7], "bearer ") {
		return strings.TrimSpace(v[7:])
	}
	return v
}
