// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompterFrom(strings.NewReader("  ana@escola.br \n\n"), &out)

	got, err := p.ReadLine("Email", "")
	require.NoError(t, err)
	assert.Equal(t, "ana@escola.br", got)

	got, err = p.ReadLine("Tipo", "Comunicado")
	require.NoError(t, err)
	assert.Equal(t, "Comunicado", got)
	assert.Contains(t, out.String(), "Tipo [Comunicado]: ")
}

func TestReadLineWithoutTrailingNewline(t *testing.T) {
	p := NewPrompterFrom(strings.NewReader("last"), &bytes.Buffer{})
	got, err := p.ReadLine("x", "")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.ReadLine("x", "")
	assert.Error(t, err)
}

func TestReadSecretKeepsSpaces(t *testing.T) {
	p := NewPrompterFrom(strings.NewReader(" s3nha \n"), &bytes.Buffer{})
	got, err := p.ReadSecret("Password")
	require.NoError(t, err)
	assert.Equal(t, " s3nha ", got)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"sim\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		p := NewPrompterFrom(strings.NewReader(tt.input), &bytes.Buffer{})
		got, err := p.Confirm("Delete?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestLinesUsed(t *testing.T) {
	assert.Equal(t, 2, linesUsed(0, 80))
	assert.Equal(t, 2, linesUsed(80, 80))
	assert.Equal(t, 3, linesUsed(81, 80))
	assert.Equal(t, "\r\x1b[2K\x1b[1A\r\x1b[2K", clearSequence(2))
}

func TestAnsweredPromptsAreErased(t *testing.T) {
	var cleared []int
	p := NewPrompterFrom(strings.NewReader("ana@escola.br\ns3nha\n"), &bytes.Buffer{})
	p.clear = func(n int) { cleared = append(cleared, n) }

	_, err := p.ReadLine("Email", "")
	require.NoError(t, err)
	_, err = p.ReadSecret("Senha")
	require.NoError(t, err)

	assert.Equal(t, []int{len("Email: ") + len("ana@escola.br"), len("Senha: ") + len("s3nha")}, cleared)
}

func TestPipedPromptsAreNotErased(t *testing.T) {
	p := NewPrompterFrom(strings.NewReader("x\n"), &bytes.Buffer{})
	assert.Nil(t, p.clear)
	_, err := p.ReadLine("Título", "")
	require.NoError(t, err)
}
