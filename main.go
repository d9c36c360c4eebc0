// Package main is the entry point for the Mural CLI application.
// It gives teachers and students access to school announcements from the terminal.
package main

import (
	"mural/cli/cmd"
)

// main is the entry point for the Mural CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
