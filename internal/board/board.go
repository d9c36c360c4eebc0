// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package board is the data-access layer the CLI screens use: it reads the
// session for the token and role, calls the backend, and keeps fetched lists in
// a query cache that every successful mutation invalidates.
//
// Mutations are role-gated here as a client-side convenience; the backend still
// enforces authorization on its own.
package board

import (
	"context"
	"slices"
	"strings"
	"time"

	"mural/cli/internal/auth"
	"mural/cli/internal/backend"
	merrors "mural/cli/internal/errors"
	"mural/cli/internal/logging"
)

// DefaultCacheTTL bounds how long a fetched list is reused without a mutation.
const DefaultCacheTTL = time.Minute

// Board exposes announcement and account operations for the current session.
type Board struct {
	api   backend.API
	store *auth.Store
	cache *queryCache
}

// New creates a Board. A zero ttl keeps lists until they are invalidated.
func New(api backend.API, store *auth.Store, ttl time.Duration) *Board {
	b := &Board{api: api, store: store, cache: newQueryCache(ttl)}
	// A different user may see different lists.
	store.Subscribe(func(auth.Session) { b.cache.clear() })
	return b
}

// Posts returns all announcements, from cache when fresh. The slice is the
// caller's own copy.
func (b *Board) Posts(ctx context.Context) ([]backend.Announcement, error) {
	if v, ok := b.cache.get(keyPosts); ok {
		logging.Debugf("board: posts served from cache")
		return slices.Clone(v.([]backend.Announcement)), nil
	}
	posts, err := b.api.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	b.cache.set(keyPosts, posts)
	return slices.Clone(posts), nil
}

// Post finds one announcement by id within the list.
func (b *Board) Post(ctx context.Context, id string) (backend.Announcement, bool, error) {
	posts, err := b.Posts(ctx)
	if err != nil {
		return backend.Announcement{}, false, err
	}
	for _, p := range posts {
		if p.ID == id {
			return p, true, nil
		}
	}
	return backend.Announcement{}, false, nil
}

// Search returns the announcements whose title or author contains text,
// ignoring case. Empty text returns everything.
func (b *Board) Search(ctx context.Context, text string) ([]backend.Announcement, error) {
	posts, err := b.Posts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPosts(posts, text), nil
}

// FilterPosts applies the search-box filter to posts.
func FilterPosts(posts []backend.Announcement, text string) []backend.Announcement {
	q := strings.ToLower(strings.TrimSpace(text))
	if q == "" {
		return slices.Clone(posts)
	}
	out := make([]backend.Announcement, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Titulo), q) || strings.Contains(strings.ToLower(p.Autor), q) {
			out = append(out, p)
		}
	}
	return out
}

// DefaultPostForm returns a blank form with the type preselected and the
// author prefilled from the session.
func (b *Board) DefaultPostForm() PostForm {
	f := PostForm{Tipo: DefaultPostType}
	if s := b.store.Session(); s.User != nil {
		f.Autor = s.User.Email
	}
	return f
}

// CreatePost publishes a new announcement. Teachers only.
func (b *Board) CreatePost(ctx context.Context, form PostForm) (backend.Announcement, error) {
	s, err := b.store.RequireRole(backend.RoleProfessor)
	if err != nil {
		return backend.Announcement{}, err
	}
	if err := form.Validate(); err != nil {
		return backend.Announcement{}, err
	}
	a, err := b.api.CreatePost(ctx, form.Input(), s.Token)
	if err != nil {
		return backend.Announcement{}, err
	}
	b.cache.invalidate(keyPosts)
	return a, nil
}

// UpdatePost replaces the fields of announcement id. Teachers only.
func (b *Board) UpdatePost(ctx context.Context, id string, form PostForm) (backend.Announcement, error) {
	s, err := b.store.RequireRole(backend.RoleProfessor)
	if err != nil {
		return backend.Announcement{}, err
	}
	if err := requireID(id); err != nil {
		return backend.Announcement{}, err
	}
	if err := form.Validate(); err != nil {
		return backend.Announcement{}, err
	}
	a, err := b.api.UpdatePost(ctx, id, form.Input(), s.Token)
	if err != nil {
		return backend.Announcement{}, err
	}
	b.cache.invalidate(keyPosts)
	return a, nil
}

// DeletePost removes announcement id. Teachers only.
func (b *Board) DeletePost(ctx context.Context, id string) error {
	s, err := b.store.RequireRole(backend.RoleProfessor)
	if err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	if err := b.api.DeletePost(ctx, id, s.Token); err != nil {
		return err
	}
	b.cache.invalidate(keyPosts)
	return nil
}

// Users lists the accounts of role. Teachers only; for anyone else the backend
// is never asked.
func (b *Board) Users(ctx context.Context, role backend.Role) ([]backend.ManagedUser, error) {
	s, err := b.store.RequireRole(backend.RoleProfessor)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, merrors.New(merrors.Validation, "unknown role "+string(role))
	}
	key := usersKey(string(role))
	if v, ok := b.cache.get(key); ok {
		return slices.Clone(v.([]backend.ManagedUser)), nil
	}
	users, err := b.api.ListUsers(ctx, role, s.Token)
	if err != nil {
		return nil, err
	}
	b.cache.set(key, users)
	return slices.Clone(users), nil
}

// FindUser looks account id up in every role's list and reports the account
// as stored, including the role it holds. Teachers only.
func (b *Board) FindUser(ctx context.Context, id string) (backend.ManagedUser, bool, error) {
	if err := requireID(id); err != nil {
		return backend.ManagedUser{}, false, err
	}
	for _, role := range []backend.Role{backend.RoleProfessor, backend.RoleAluno} {
		users, err := b.Users(ctx, role)
		if err != nil {
			return backend.ManagedUser{}, false, err
		}
		for _, u := range users {
			if u.ID == id {
				if !u.Role.Valid() {
					u.Role = role
				}
				return u, true, nil
			}
		}
	}
	return backend.ManagedUser{}, false, nil
}

// CreateUser registers a new account. Teachers only.
func (b *Board) CreateUser(ctx context.Context, form UserForm) (backend.ManagedUser, error) {
	s, err := b.store.RequireRole(backend.RoleProfessor)
	if err != nil {
		return backend.ManagedUser{}, err
	}
	if err := form.ValidateCreate(); err != nil {
		return backend.ManagedUser{}, err
	}
	u, err := b.api.CreateUser(ctx, form.Role, form.Credentials(), s.Token)
	if err != nil {
		return backend.ManagedUser{}, err
	}
	b.cache.invalidate(usersKey(string(form.Role)))
	return u, nil
}

// UpdateUser edits account id. Teachers only.
func (b *Board) UpdateUser(ctx context.Context, id string, form UserForm) (backend.ManagedUser, error) {
	s, err := b.store.RequireRole(backend.RoleProfessor)
	if err != nil {
		return backend.ManagedUser{}, err
	}
	if err := requireID(id); err != nil {
		return backend.ManagedUser{}, err
	}
	if err := form.ValidateUpdate(); err != nil {
		return backend.ManagedUser{}, err
	}
	u, err := b.api.UpdateUser(ctx, form.Role, id, form.Patch(), s.Token)
	if err != nil {
		return backend.ManagedUser{}, err
	}
	b.cache.invalidate(usersKey(string(form.Role)))
	return u, nil
}

// DeleteUser removes account id of role. Teachers only.
func (b *Board) DeleteUser(ctx context.Context, role backend.Role, id string) error {
	s, err := b.store.RequireRole(backend.RoleProfessor)
	if err != nil {
		return err
	}
	if err := requireID(id); err != nil {
		return err
	}
	if err := b.api.DeleteUser(ctx, role, id, s.Token); err != nil {
		return err
	}
	b.cache.invalidate(usersKey(string(role)))
	return nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return merrors.New(merrors.Validation, "id is required")
	}
	return nil
}
