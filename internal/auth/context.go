// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"context"
	"errors"
)

// ErrNoProvider means the session was read from a context that never had a
// Store attached. It signals a wiring bug, not a user error.
var ErrNoProvider = errors.New("auth: no session store in context (missing WithStore)")

type storeKey struct{}

// WithStore returns a child context carrying store.
func WithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// FromContext returns the store attached by WithStore.
func FromContext(ctx context.Context) (*Store, error) {
	if ctx == nil {
		return nil, ErrNoProvider
	}
	store, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || store == nil {
		return nil, ErrNoProvider
	}
	return store, nil
}

// MustFromContext is FromContext for call sites where a missing store is a
// programming error. It panics instead of returning an error.
func MustFromContext(ctx context.Context) *Store {
	store, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return store
}
