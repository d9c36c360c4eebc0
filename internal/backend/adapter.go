// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides interfaces and implementations for communicating with the
// school communications REST backend. It defines the API contract for authentication,
// announcement posts and user management, and maps backend wire shapes to the shapes
// the CLI displays.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
//
// Every call either fully succeeds or fully fails; nothing is retried.
// Calls that take a token reject an empty token before any request is sent.
type API interface {
	// Login exchanges credentials for a session token. The backend is the sole
	// authority on whether the credentials are valid.
	Login(ctx context.Context, creds Credentials) (string, error)

	ListPosts(ctx context.Context) ([]Announcement, error)
	CreatePost(ctx context.Context, in PostInput, token string) (Announcement, error)
	UpdatePost(ctx context.Context, id string, in PostInput, token string) (Announcement, error)
	DeletePost(ctx context.Context, id string, token string) error

	ListUsers(ctx context.Context, role Role, token string) ([]ManagedUser, error)
	CreateUser(ctx context.Context, role Role, creds Credentials, token string) (ManagedUser, error)
	UpdateUser(ctx context.Context, role Role, id string, patch UserPatch, token string) (ManagedUser, error)
	DeleteUser(ctx context.Context, role Role, id string, token string) error
}
