// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"mural/cli/internal/backend"
	merrors "mural/cli/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the user a token was issued to. It is derived only from the token
// and never changes for the lifetime of that token.
type Identity struct {
	ID    string
	Email string
	Role  backend.Role
}

// claims mirrors the payload the backend signs into its tokens.
// The id is a string or a number depending on the backend's user store.
type claims struct {
	UserID any    `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// DecodeToken reads the identity embedded in a token's payload.
// The signature is not verified: the token came from the backend's own login
// response and the backend re-checks it on every request. Expiry is not checked
// either; an expired token stays usable client-side until the backend rejects it.
func DecodeToken(token string) (Identity, error) {
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimSpace(token), &c); err != nil {
		return Identity{}, merrors.Wrap(merrors.Decode, "malformed session token", err)
	}

	id := claimString(c.UserID)
	if id == "" {
		id = c.Subject
	}
	role, err := backend.ParseRole(c.Role)
	if err != nil {
		return Identity{}, merrors.Wrap(merrors.Decode, "session token has no usable role", err)
	}
	// An empty id is accepted; the role is what gates the screens.
	return Identity{ID: id, Email: c.Email, Role: role}, nil
}

func claimString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
