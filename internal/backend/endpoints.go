// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/url"
	"strings"
)

// Endpoints contains REST API endpoint paths relative to the base URL.
type Endpoints struct {
	Login string // e.g., "/auth/login"
	Posts string // e.g., "/posts"
	Users string // e.g., "/users"
}

// DefaultEndpoints returns the path family the backend serves.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login: "/auth/login",
		Posts: "/posts",
		Users: "/users",
	}
}

// post returns the path of a single post.
func (e Endpoints) post(id string) string {
	return e.Posts + "/" + url.PathEscape(id)
}

// users returns the collection path for a role.
func (e Endpoints) users(role Role) string {
	return e.Users + "/" + url.PathEscape(string(role))
}

// user returns the path of a single user within a role.
func (e Endpoints) user(role Role, id string) string {
	return e.users(role) + "/" + url.PathEscape(id)
}

// BaseURL normalizes a configured base URL by trimming trailing slashes.
func BaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
