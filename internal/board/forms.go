// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package board

import (
	"fmt"
	"net/mail"
	"strings"

	"mural/cli/internal/backend"
	merrors "mural/cli/internal/errors"
)

// Post types offered by the form. DefaultPostType is preselected.
const (
	TypeComunicado  = "Comunicado"
	TypeAviso       = "Aviso"
	TypeOutros      = "Outros"
	DefaultPostType = TypeComunicado
)

// PostTypes lists the selectable post types in display order.
var PostTypes = []string{TypeComunicado, TypeAviso, TypeOutros}

// PostForm is what a teacher fills in to publish or edit an announcement.
type PostForm struct {
	Titulo    string
	Descricao string
	Autor     string
	Tipo      string
}

// PostFormFrom prefills a form for editing a.
func PostFormFrom(a backend.Announcement) PostForm {
	return PostForm{Titulo: a.Titulo, Descricao: a.Descricao, Autor: a.Autor, Tipo: a.Tipo}
}

// normalize trims fields, defaults the type, and matches the type case-insensitively.
func (f PostForm) normalize() PostForm {
	f.Titulo = strings.TrimSpace(f.Titulo)
	f.Descricao = strings.TrimSpace(f.Descricao)
	f.Autor = strings.TrimSpace(f.Autor)
	f.Tipo = strings.TrimSpace(f.Tipo)
	if f.Tipo == "" {
		f.Tipo = DefaultPostType
	}
	for _, t := range PostTypes {
		if strings.EqualFold(t, f.Tipo) {
			f.Tipo = t
		}
	}
	return f
}

// Validate reports the first missing or invalid field.
func (f PostForm) Validate() error {
	f = f.normalize()
	var missing []string
	if f.Titulo == "" {
		missing = append(missing, "titulo")
	}
	if f.Descricao == "" {
		missing = append(missing, "descricao")
	}
	if f.Autor == "" {
		missing = append(missing, "autor")
	}
	if len(missing) > 0 {
		return merrors.New(merrors.Validation, "required fields missing: "+strings.Join(missing, ", "))
	}
	if !validPostType(f.Tipo) {
		return merrors.New(merrors.Validation, fmt.Sprintf("tipo must be one of %s", strings.Join(PostTypes, ", ")))
	}
	return nil
}

// Input converts the form into the backend body.
func (f PostForm) Input() backend.PostInput {
	f = f.normalize()
	return backend.PostInput{Title: f.Titulo, Content: f.Descricao, Author: f.Autor, Tipo: f.Tipo}
}

func validPostType(t string) bool {
	for _, v := range PostTypes {
		if v == t {
			return true
		}
	}
	return false
}

// UserForm is used both to create an account and to edit one.
type UserForm struct {
	Email    string
	Password string
	Role     backend.Role
}

// ValidateCreate requires an email and a password.
func (f UserForm) ValidateCreate() error {
	if err := f.validateCommon(); err != nil {
		return err
	}
	if f.Password == "" {
		return merrors.New(merrors.Validation, "password is required for new accounts")
	}
	return nil
}

// ValidateUpdate requires an email; an empty password keeps the current one.
func (f UserForm) ValidateUpdate() error {
	return f.validateCommon()
}

func (f UserForm) validateCommon() error {
	email := strings.TrimSpace(f.Email)
	if email == "" {
		return merrors.New(merrors.Validation, "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return merrors.Wrap(merrors.Validation, "email is not valid", err)
	}
	if !f.Role.Valid() {
		return merrors.New(merrors.Validation, fmt.Sprintf("role must be %q or %q", backend.RoleProfessor, backend.RoleAluno))
	}
	return nil
}

// Credentials converts the form into a create body.
func (f UserForm) Credentials() backend.Credentials {
	return backend.Credentials{Email: strings.TrimSpace(f.Email), Password: f.Password}
}

// Patch converts the form into a partial update; the role is always sent.
func (f UserForm) Patch() backend.UserPatch {
	return backend.UserPatch{Email: strings.TrimSpace(f.Email), Password: f.Password, Role: f.Role}
}
