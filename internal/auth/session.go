// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth owns the client session: who is logged in, with which token.
//
// Store is the single source of truth for the session. It has one writer API
// (Login and Logout) and any number of readers, which either take snapshots with
// Session or subscribe to changes. Every update replaces the whole Session value,
// so a reader never observes a token without its identity or vice versa.
// The token itself is persisted through a TokenStore (the OS keychain in
// production).
package auth

import (
	"context"
	"errors"
	"sync"

	"mural/cli/internal/backend"
	merrors "mural/cli/internal/errors"
	"mural/cli/internal/keychain"
	"mural/cli/internal/logging"
)

// TokenStore persists the raw session token under one fixed key.
// keychain.Manager implements it.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	ClearToken() error
}

var (
	// ErrNotAuthenticated is returned when an operation needs a session and there is none.
	ErrNotAuthenticated = merrors.New(merrors.Precondition, "not logged in")
	// ErrForbidden is returned when the session role does not allow an operation.
	ErrForbidden = merrors.New(merrors.Forbidden, "operation not allowed for this role")
)

// Session is an immutable snapshot of the client session.
type Session struct {
	Token           string
	User            *Identity
	IsAuthenticated bool
	IsLoading       bool
}

// State names the session lifecycle stage.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// State reports the lifecycle stage of s.
func (s Session) State() State {
	switch {
	case s.IsLoading:
		return StateLoading
	case s.IsAuthenticated:
		return StateAuthenticated
	default:
		return StateUnauthenticated
	}
}

// HasRole reports whether the session is authenticated with role.
func (s Session) HasRole(role backend.Role) bool {
	return s.IsAuthenticated && s.User != nil && s.User.Role == role
}

// Option configures a Store.
type Option func(*Store)

// WithRestore controls whether Initialize applies a stored token to the live
// session. When disabled the stored token is only read, so every process starts
// logged out.
func WithRestore(restore bool) Option {
	return func(s *Store) { s.restore = restore }
}

// Store holds the process-wide session.
type Store struct {
	tokens  TokenStore
	restore bool

	mu      sync.RWMutex
	current Session
	nextID  int
	subs    map[int]func(Session)
}

// NewStore creates a store in the Loading state. Restore-on-start is enabled
// unless WithRestore(false) is given.
func NewStore(tokens TokenStore, opts ...Option) *Store {
	s := &Store{
		tokens:  tokens,
		restore: true,
		current: Session{IsLoading: true},
		subs:    make(map[int]func(Session)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted token. It always leaves the store out of the
// Loading state. A token that cannot be read or decoded is cleared from storage
// and the session starts logged out; storage problems are not returned because
// they only mean "no session".
func (s *Store) Initialize(ctx context.Context) {
	next := Session{}
	defer func() { s.publish(next) }()

	if err := ctx.Err(); err != nil {
		return
	}

	token, err := s.tokens.LoadToken()
	if err != nil {
		if !isNotFound(err) {
			logging.Debugf("auth: loading stored token failed: %v", err)
			s.clearQuietly()
		}
		return
	}
	id, err := DecodeToken(token)
	if err != nil {
		logging.Debugf("auth: stored token rejected: %v", err)
		s.clearQuietly()
		return
	}
	if !s.restore {
		logging.Debugf("auth: stored token present, restore disabled")
		return
	}
	next = Session{Token: token, User: &id, IsAuthenticated: true}
}

// Login decodes token, persists it and publishes the new session.
// A token that cannot be decoded forces the logged-out state and returns a
// decode error.
func (s *Store) Login(token string) error {
	id, err := DecodeToken(token)
	if err != nil {
		if lerr := s.Logout(); lerr != nil {
			logging.Debugf("auth: logout after decode failure: %v", lerr)
		}
		return err
	}
	if err := s.tokens.SaveToken(token); err != nil {
		return merrors.Wrap(merrors.Storage, "saving session token", err)
	}
	s.publish(Session{Token: token, User: &id, IsAuthenticated: true})
	return nil
}

// Logout clears the persisted token and publishes the logged-out session.
// The in-memory session is reset even when storage fails.
func (s *Store) Logout() error {
	err := s.tokens.ClearToken()
	s.publish(Session{})
	if err != nil {
		return merrors.Wrap(merrors.Storage, "clearing session token", err)
	}
	return nil
}

// Session returns a snapshot of the current session.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to receive every new session value. fn is called
// synchronously by the writer, after the store's lock is released. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// RequireRole checks the precondition for a role-gated operation and returns the
// session it may use.
func (s *Store) RequireRole(role backend.Role) (Session, error) {
	cur := s.Session()
	if !cur.IsAuthenticated || cur.Token == "" {
		return cur, ErrNotAuthenticated
	}
	if !cur.HasRole(role) {
		return cur, ErrForbidden
	}
	return cur, nil
}

// RequireSession checks that some user is logged in.
func (s *Store) RequireSession() (Session, error) {
	cur := s.Session()
	if !cur.IsAuthenticated || cur.Token == "" {
		return cur, ErrNotAuthenticated
	}
	return cur, nil
}

func (s *Store) publish(next Session) {
	s.mu.Lock()
	s.current = next
	subs := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

func (s *Store) clearQuietly() {
	if err := s.tokens.ClearToken(); err != nil {
		logging.Debugf("auth: clearing token failed: %v", err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, keychain.ErrNotFound)
}
