// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"mural/cli/internal/auth"
	"mural/cli/internal/backend"
	"mural/cli/internal/config"
	merrors "mural/cli/internal/errors"
	"mural/cli/internal/keychain"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailMarksErrorsAsShown(t *testing.T) {
	a := &app{cfg: config.Defaults()}
	tests := []struct {
		name string
		err  error
		kind merrors.Kind
	}{
		{"validation", merrors.New(merrors.Validation, "titulo is required"), merrors.Validation},
		{"not logged in", auth.ErrNotAuthenticated, merrors.Precondition},
		{"forbidden", auth.ErrForbidden, merrors.Forbidden},
		{"request", &backend.RequestError{Op: "list posts", Status: 500, Message: "boom"}, merrors.RequestFailed},
		{"plain", errors.New("something else"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.fail("testing", tt.err)
			var shown *reportedError
			require.ErrorAs(t, err, &shown)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.kind, merrors.KindOf(err))
		})
	}
	assert.NoError(t, a.fail("testing", nil))
}

func TestRequireTeacher(t *testing.T) {
	a := &app{cfg: config.Defaults()}
	store := auth.NewStore(keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil)))
	store.Initialize(t.Context())

	assert.ErrorIs(t, a.requireTeacher(store), auth.ErrNotAuthenticated)
}

func TestSpinnerIsSilentWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	stop := startInlineSpinner(&buf, "Loading", spinnerFrames, time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	stop()
	assert.Empty(t, buf.String())
}
