// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package terminal provides utilities for terminal operations such as prompting
// and clearing text.
package terminal

import (
	"fmt"
	"math"
	"os"
	"strings"

	"golang.org/x/term"
)

// ClearPreviousLines clears text from the terminal that was previously printed.
// It calculates how many lines were used by the provided text based on the current
// terminal width, then moves up and clears each line.
//
// textLength is the prompt plus the typed answer. Output that is not a
// terminal is left alone.
func ClearPreviousLines(textLength int) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return
	}
	termWidth := 80
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		termWidth = width
	}
	fmt.Print(clearSequence(linesUsed(textLength, termWidth)))
}

// linesUsed returns how many rows text of textLength occupied at width,
// plus the empty row the cursor sits on after Enter.
func linesUsed(textLength, width int) int {
	total := int(math.Ceil(float64(textLength) / float64(width)))
	if total < 1 {
		total = 1
	}
	return total + 1
}

func clearSequence(lines int) string {
	var b strings.Builder
	for i := 0; i < lines; i++ {
		b.WriteString("\r\x1b[2K") // start of line, clear it
		if i < lines-1 {
			b.WriteString("\x1b[1A") // up one
		}
	}
	return b.String()
}
