// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"errors"
	"testing"

	"mural/cli/internal/keychain"

	"github.com/99designs/keyring"
	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func professorToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{"id": "p1", "email": "prof@escola.br", "role": "professor"})
}

func alunoToken(t *testing.T) string {
	return signToken(t, jwt.MapClaims{"id": "a1", "email": "aluno@escola.br", "role": "aluno"})
}

func memoryTokens() *keychain.Manager {
	return keychain.NewManagerWithRing(keyring.NewArrayKeyring(nil))
}

// brokenTokens fails every storage operation.
type brokenTokens struct {
	cleared int
}

var errBroken = errors.New("keychain locked")

func (b *brokenTokens) SaveToken(string) error     { return errBroken }
func (b *brokenTokens) LoadToken() (string, error) { return "", errBroken }
func (b *brokenTokens) ClearToken() error {
	b.cleared++
	return errBroken
}
