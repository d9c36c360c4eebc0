// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
)

// ManagedUser is a user account as listed on the admin screens.
type ManagedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// UserPatch carries the fields of a partial update. Empty fields are not sent,
// so an empty Password keeps the current password.
type UserPatch struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// userWire is the backend shape; some responses use "id" instead of "_id".
type userWire struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
}

func (u userWire) toManaged() ManagedUser {
	id := u.MongoID
	if id == "" {
		id = u.ID
	}
	return ManagedUser{ID: id, Email: u.Email, Role: u.Role}
}

type newUserBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// ListUsers calls GET /users/{role} with Authorization header.
func (h *HTTP) ListUsers(ctx context.Context, role Role, token string) ([]ManagedUser, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var raw []userWire
	if err := h.do(ctx, "list users", http.MethodGet, h.endpoints.users(role), token, nil, &raw); err != nil {
		return nil, err
	}
	out := make([]ManagedUser, 0, len(raw))
	for _, u := range raw {
		out = append(out, u.toManaged())
	}
	return out, nil
}

// CreateUser calls POST /users/{role} with { email, password, role }.
func (h *HTTP) CreateUser(ctx context.Context, role Role, creds Credentials, token string) (ManagedUser, error) {
	if token == "" {
		return ManagedUser{}, ErrMissingToken
	}
	body := newUserBody{Email: creds.Email, Password: creds.Password, Role: role}
	var u userWire
	if err := h.do(ctx, "create user", http.MethodPost, h.endpoints.users(role), token, body, &u); err != nil {
		return ManagedUser{}, err
	}
	created := u.toManaged()
	if created.Email == "" {
		created.Email, created.Role = creds.Email, role
	}
	return created, nil
}

// UpdateUser calls PUT /users/{role}/{id} with the non-empty fields of patch.
func (h *HTTP) UpdateUser(ctx context.Context, role Role, id string, patch UserPatch, token string) (ManagedUser, error) {
	if token == "" {
		return ManagedUser{}, ErrMissingToken
	}
	var u userWire
	if err := h.do(ctx, "update user", http.MethodPut, h.endpoints.user(role, id), token, patch, &u); err != nil {
		return ManagedUser{}, err
	}
	return u.toManaged(), nil
}

// DeleteUser calls DELETE /users/{role}/{id} with Authorization header.
func (h *HTTP) DeleteUser(ctx context.Context, role Role, id string, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	return h.do(ctx, "delete user", http.MethodDelete, h.endpoints.user(role, id), token, nil, nil)
}
