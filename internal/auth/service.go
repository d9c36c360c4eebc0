// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"strings"

	"mural/cli/internal/backend"
	merrors "mural/cli/internal/errors"
)

// Service centralizes authentication-related operations against the backend
// and the session store.
type Service struct {
	be    backend.API
	store *Store
}

// NewService constructs an auth Service.
func NewService(be backend.API, store *Store) *Service {
	return &Service{be: be, store: store}
}

// Login validates the form locally, asks the backend for a token and applies it
// to the session. The backend decides whether the credentials are valid.
func (s *Service) Login(ctx context.Context, creds backend.Credentials) (Identity, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if creds.Email == "" || creds.Password == "" {
		return Identity{}, merrors.New(merrors.Validation, "email and password are required")
	}

	token, err := s.be.Login(ctx, creds)
	if err != nil {
		return Identity{}, err
	}
	if err := s.store.Login(token); err != nil {
		return Identity{}, err
	}
	return *s.store.Session().User, nil
}

// Logout clears the local session. The backend keeps no session to invalidate.
func (s *Service) Logout() error {
	return s.store.Logout()
}

// WhoAmI returns the identity of the current session, if any.
func (s *Service) WhoAmI() (Identity, bool) {
	cur, err := s.store.RequireSession()
	if err != nil || cur.User == nil {
		return Identity{}, false
	}
	return *cur.User, true
}
