// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"fmt"
	"strings"
)

// Role is the account type a user holds.
type Role string

const (
	// RoleProfessor is a teacher: may publish posts and manage users.
	RoleProfessor Role = "professor"
	// RoleAluno is a student: read-only access to posts.
	RoleAluno Role = "aluno"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleProfessor || r == RoleAluno
}

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q (expected %q or %q)", s, RoleProfessor, RoleAluno)
	}
	return r, nil
}
