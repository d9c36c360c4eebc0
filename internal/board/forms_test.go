// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package board

import (
	"testing"

	"mural/cli/internal/backend"
	merrors "mural/cli/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestPostFormValidate(t *testing.T) {
	tests := []struct {
		name    string
		form    PostForm
		wantErr bool
	}{
		{name: "complete", form: PostForm{Titulo: "T", Descricao: "D", Autor: "A", Tipo: "Aviso"}},
		{name: "type defaults", form: PostForm{Titulo: "T", Descricao: "D", Autor: "A"}},
		{name: "type any case", form: PostForm{Titulo: "T", Descricao: "D", Autor: "A", Tipo: "OUTROS"}},
		{name: "missing title", form: PostForm{Descricao: "D", Autor: "A"}, wantErr: true},
		{name: "blank description", form: PostForm{Titulo: "T", Descricao: "   ", Autor: "A"}, wantErr: true},
		{name: "missing author", form: PostForm{Titulo: "T", Descricao: "D"}, wantErr: true},
		{name: "unknown type", form: PostForm{Titulo: "T", Descricao: "D", Autor: "A", Tipo: "Memorando"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.wantErr {
				assert.Equal(t, merrors.Validation, merrors.KindOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPostFormInput(t *testing.T) {
	in := PostForm{Titulo: " T ", Descricao: "D", Autor: "A", Tipo: "aviso"}.Input()
	assert.Equal(t, backend.PostInput{Title: "T", Content: "D", Author: "A", Tipo: TypeAviso}, in)
}

func TestPostFormFrom(t *testing.T) {
	a := backend.Announcement{ID: "1", Titulo: "T", Descricao: "D", Autor: "A", Tipo: "Outros"}
	assert.Equal(t, PostForm{Titulo: "T", Descricao: "D", Autor: "A", Tipo: "Outros"}, PostFormFrom(a))
}

func TestUserFormValidation(t *testing.T) {
	ok := UserForm{Email: "ana@escola.br", Password: "pw", Role: backend.RoleAluno}
	assert.NoError(t, ok.ValidateCreate())
	assert.NoError(t, ok.ValidateUpdate())

	noPassword := UserForm{Email: "ana@escola.br", Role: backend.RoleAluno}
	assert.Error(t, noPassword.ValidateCreate())
	assert.NoError(t, noPassword.ValidateUpdate(), "empty password keeps the current one")

	assert.Error(t, UserForm{Password: "pw", Role: backend.RoleAluno}.ValidateCreate())
	assert.Error(t, UserForm{Email: "not-an-email", Password: "pw", Role: backend.RoleAluno}.ValidateCreate())
	assert.Error(t, UserForm{Email: "ana@escola.br", Password: "pw", Role: "admin"}.ValidateCreate())
}

func TestUserFormPatchOmitsEmptyPassword(t *testing.T) {
	p := UserForm{Email: " ana@escola.br ", Role: backend.RoleProfessor}.Patch()
	assert.Equal(t, backend.UserPatch{Email: "ana@escola.br", Role: backend.RoleProfessor}, p)
}
