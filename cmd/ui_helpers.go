// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"mural/cli/internal/auth"
	"mural/cli/internal/backend"
	merrors "mural/cli/internal/errors"
	"mural/cli/internal/httperrors"
	"mural/cli/internal/logging"

	"atomicgo.dev/cursor"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// startInlineSpinner draws frames followed by text on a single line until the
// returned stop function is called. The line is cleared on stop. Nothing is
// drawn when w is not a terminal.
func startInlineSpinner(w io.Writer, text string, frames []string, interval time.Duration) func() {
	if f, ok := w.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}
	cursor.Hide()
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		i := 0
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				line := fmt.Sprintf("%s %s", frames[i%len(frames)], text)
				fmt.Fprintf(w, "\r%*s\r", len(line), "")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s", frames[i%len(frames)], text)
				i++
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			wg.Wait()
			cursor.Show()
		})
	}
}

// withSpinner runs fn while a spinner with text is shown.
func withSpinner(text string, fn func() error) error {
	stop := startInlineSpinner(os.Stdout, text, spinnerFrames, 120*time.Millisecond)
	defer stop()
	return fn()
}

// reportedError marks an error that has already been shown to the user.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// fail shows err once, worded for its kind, and returns it marked as shown.
// context completes the sentence "... while <context>".
func (a *app) fail(context string, err error) error {
	if err == nil {
		return nil
	}
	switch merrors.KindOf(err) {
	case merrors.RequestFailed:
		err = httperrors.FormatNetworkError(err, context, httperrors.ExtractHostFromURL(a.cfg.APIURL))
	case merrors.Validation:
		pterm.Warning.Println(messageOf(err))
	case merrors.Precondition:
		showNotLoggedIn()
	case merrors.Forbidden:
		pterm.Error.Println("Only teachers can do that.")
	case merrors.Decode:
		pterm.Error.Println("The server returned a session token this client cannot read. You have been logged out.")
	case merrors.Storage:
		pterm.Error.Println(logging.PresentError("Secure storage failed", err))
	default:
		pterm.Error.Println(logging.PresentError("Failed while "+context, err))
	}
	return &reportedError{err: err}
}

// messageOf returns the human part of a categorized error.
func messageOf(err error) string {
	var e *merrors.E
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return logging.Mask(err.Error())
}

func showNotLoggedIn() {
	pterm.Println("🔒 You're not logged in yet!")
	pterm.Println("   Run 'mural login' to get started.")
}

// requireTeacher stops a screen early, before any prompting, when the
// session is not a teacher's.
func (a *app) requireTeacher(store *auth.Store) error {
	if _, err := store.RequireRole(backend.RoleProfessor); err != nil {
		return a.fail("checking your session", err)
	}
	return nil
}
