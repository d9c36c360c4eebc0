// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// Prompter asks questions on a line-oriented input.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // -1 when the input is not a terminal
	// clear, when set, erases a prompt and its answer once read.
	clear func(textLength int)
}

// NewPrompter reads from stdin and writes prompts to stdout. On an
// interactive terminal each prompt is erased after it is answered.
func NewPrompter() *Prompter {
	p := &Prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout, fd: int(os.Stdin.Fd())}
	if !term.IsTerminal(p.fd) {
		p.fd = -1
	}
	if p.fd >= 0 && term.IsTerminal(int(os.Stdout.Fd())) {
		p.clear = ClearPreviousLines
	}
	return p
}

func (p *Prompter) erase(prompt, answer string) {
	if p.clear != nil {
		p.clear(utf8.RuneCountInString(prompt) + utf8.RuneCountInString(answer))
	}
}

// NewPrompterFrom is used with non-terminal streams such as pipes and tests.
func NewPrompterFrom(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, fd: -1}
}

// ReadLine prints prompt and returns the trimmed answer. If def is not
// empty it is shown and returned for an empty answer.
func (p *Prompter) ReadLine(prompt, def string) (string, error) {
	if def != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, def)
	}
	prompt += ": "
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	p.erase(prompt, strings.TrimRight(line, "\r\n"))
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// ReadSecret prints prompt and reads an answer without echo when the input
// is a terminal.
func (p *Prompter) ReadSecret(prompt string) (string, error) {
	prompt += ": "
	fmt.Fprint(p.out, prompt)
	if p.fd < 0 {
		line, err := p.in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		// The answer was echoed by whatever fed the input.
		p.erase(prompt, strings.TrimRight(line, "\r\n"))
		return strings.TrimRight(line, "\r\n"), nil
	}
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	p.erase(prompt, "")
	return string(b), nil
}

// Confirm asks a yes/no question; anything but y or yes is a no.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	ans, err := p.ReadLine(prompt+" (y/N)", "")
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(ans) {
	case "y", "yes", "s", "sim":
		return true, nil
	}
	return false, nil
}
