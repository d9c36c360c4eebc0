// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package logging provides utilities for secure logging and error presentation.
// It includes functions for masking sensitive information in log messages and
// formatting errors for user-friendly display while protecting credentials and secrets.
//
// The package helps ensure that passwords and session tokens are not accidentally
// exposed in debug output or error messages shown to users.
package logging

import (
	"regexp"
	"strings"

	"github.com/pterm/pterm"
)

var (
	rePassword     = regexp.MustCompile(`(?i)(password=)([^\s;&]+)`)
	reJSONPassword = regexp.MustCompile(`(?i)("password"\s*:\s*")([^"]*)(")`)
	reJSONToken    = regexp.MustCompile(`(?i)("(?:token|access_?token)"\s*:\s*")([^"]*)(")`)
	reToken        = regexp.MustCompile(`(?i)(token=|bearer\s+)([A-Za-z0-9._-]+)`)
	reJWT          = regexp.MustCompile(`eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)
)

// Mask replaces sensitive values in the input string with "*".
func Mask(s string) string {
	out := s
	out = rePassword.ReplaceAllString(out, "$1***")
	out = reJSONPassword.ReplaceAllString(out, "$1***$3")
	out = reJSONToken.ReplaceAllString(out, "$1***$3")
	out = reToken.ReplaceAllString(out, "$1***")
	out = reJWT.ReplaceAllString(out, "***")
	for _, k := range []string{"MURAL_KEYRING_PASSWORD"} {
		out = strings.ReplaceAll(out, k+"=", k+"=***")
	}
	return out
}

// Debugf writes a masked debug line. Output only appears when pterm debug
// messages are enabled (--verbose or MURAL_VERBOSE=1).
func Debugf(format string, args ...any) {
	pterm.Debug.Println(Mask(pterm.Sprintf(format, args...)))
}
