// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	merrors "mural/cli/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]any
}

// recorder captures requests seen by the fake backend.
type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.calls...)
}

func (r *recorder) hits() int {
	return len(r.all())
}

// fakeBackend records every request and answers with status and response.
func fakeBackend(t *testing.T, status int, response string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := recorded{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &call.Body)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("missing X-Request-ID on %s %s", r.Method, r.URL.Path)
		}
		rec.mu.Lock()
		rec.calls = append(rec.calls, call)
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newClient(url string) API {
	return New(url+"/", DefaultEndpoints(), time.Second)
}

func TestPostToAnnouncement(t *testing.T) {
	p := Post{ID: "1", Title: "T", Content: "C", Author: "A", CreatedAt: "2024-01-01T00:00:00Z"}

	got := p.ToAnnouncement()

	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "1", got.ID)
	assert.Equal(t, "T", got.Titulo)
	assert.Equal(t, "C", got.Descricao)
	assert.Equal(t, "A", got.Autor)
	assert.True(t, got.DataCriacao.Equal(want))
	assert.True(t, got.DataAtualizacao.Equal(want))
}

func TestPostToAnnouncementBadTimestamp(t *testing.T) {
	got := Post{ID: "1", CreatedAt: "yesterday"}.ToAnnouncement()
	assert.True(t, got.DataCriacao.IsZero())
	assert.True(t, got.DataAtualizacao.IsZero())
}

func TestListPosts(t *testing.T) {
	srv, rec := fakeBackend(t, http.StatusOK, `[
		{"_id":"1","title":"T","content":"C","author":"A","tipo":"Aviso","createdAt":"2024-01-01T00:00:00Z","__v":0},
		{"_id":"2","title":"U","content":"D","author":"B","tipo":"Outros","createdAt":"2024-02-01T10:30:00.000Z"}
	]`)

	posts, err := newClient(srv.URL).ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "Aviso", posts[0].Tipo)
	assert.Equal(t, "U", posts[1].Titulo)
	assert.Equal(t, 2024, posts[1].DataCriacao.Year())

	calls := rec.all()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodGet, calls[0].Method)
	assert.Equal(t, "/posts", calls[0].Path)
	assert.Empty(t, calls[0].Auth, "listing posts is anonymous")
}

func TestCreateUpdateDeletePostRequests(t *testing.T) {
	srv, rec := fakeBackend(t, http.StatusOK, `{"_id":"9","title":"T","content":"C","author":"A","tipo":"Aviso","createdAt":"2024-01-01T00:00:00Z"}`)
	api := newClient(srv.URL)
	ctx := context.Background()
	in := PostInput{Title: "T", Content: "C", Author: "A", Tipo: "Aviso"}

	created, err := api.CreatePost(ctx, in, "tok")
	require.NoError(t, err)
	assert.Equal(t, "9", created.ID)

	_, err = api.UpdatePost(ctx, "9", in, "tok")
	require.NoError(t, err)

	require.NoError(t, api.DeletePost(ctx, "9", "tok"))

	calls := rec.all()
	require.Len(t, calls, 3)
	assert.Equal(t, recorded{Method: http.MethodPost, Path: "/posts", Auth: "Bearer tok",
		Body: map[string]any{"title": "T", "content": "C", "author": "A", "tipo": "Aviso"}}, calls[0])
	assert.Equal(t, http.MethodPut, calls[1].Method)
	assert.Equal(t, "/posts/9", calls[1].Path)
	assert.Equal(t, http.MethodDelete, calls[2].Method)
	assert.Equal(t, "/posts/9", calls[2].Path)
	assert.Equal(t, "Bearer tok", calls[2].Auth)
}

func TestMutationsWithoutTokenSendNothing(t *testing.T) {
	srv, rec := fakeBackend(t, http.StatusOK, `{}`)
	api := newClient(srv.URL)
	ctx := context.Background()

	_, err := api.CreatePost(ctx, PostInput{Title: "T"}, "")
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = api.UpdatePost(ctx, "1", PostInput{}, "")
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.ErrorIs(t, api.DeletePost(ctx, "1", ""), ErrMissingToken)
	_, err = api.ListUsers(ctx, RoleAluno, "")
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = api.CreateUser(ctx, RoleAluno, Credentials{Email: "a@b"}, "")
	assert.ErrorIs(t, err, ErrMissingToken)
	_, err = api.UpdateUser(ctx, RoleAluno, "1", UserPatch{}, "")
	assert.ErrorIs(t, err, ErrMissingToken)
	assert.ErrorIs(t, api.DeleteUser(ctx, RoleAluno, "1", ""), ErrMissingToken)

	assert.Equal(t, 0, rec.hits())
	assert.Equal(t, merrors.Precondition, merrors.KindOf(ErrMissingToken))
}

func TestNonSuccessIsGenericRequestError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "json message", status: http.StatusUnauthorized, body: `{"message":"Token inválido"}`, message: "Token inválido"},
		{name: "json error", status: http.StatusForbidden, body: `{"error":"forbidden"}`, message: "forbidden"},
		{name: "plain text", status: http.StatusInternalServerError, body: "boom\n", message: "boom"},
		{name: "empty body", status: http.StatusNotFound, body: "", message: "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := fakeBackend(t, tt.status, tt.body)

			err := newClient(srv.URL).DeletePost(context.Background(), "1", "tok")

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRequestFailed)
			var re *RequestError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.status, re.Status)
			assert.Equal(t, tt.message, re.Message)
			assert.Equal(t, merrors.RequestFailed, merrors.KindOf(err))
		})
	}
}

func TestTransportErrorIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(url).ListPosts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestLogin(t *testing.T) {
	srv, rec := fakeBackend(t, http.StatusOK, `{"token":"abc.def.ghi"}`)

	token, err := newClient(srv.URL).Login(context.Background(), Credentials{Email: "ana@escola.br", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
	calls := rec.all()
	require.Len(t, calls, 1)
	assert.Equal(t, "/auth/login", calls[0].Path)
	assert.Equal(t, map[string]any{"email": "ana@escola.br", "password": "pw"}, calls[0].Body)
	assert.Empty(t, calls[0].Auth)
}

func TestLoginWithoutTokenFails(t *testing.T) {
	srv, _ := fakeBackend(t, http.StatusOK, `{"ok":true}`)

	_, err := newClient(srv.URL).Login(context.Background(), Credentials{Email: "a", Password: "b"})
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want string
	}{
		{name: "token", in: map[string]any{"token": "x"}, want: "x"},
		{name: "camel", in: map[string]any{"accessToken": "y"}, want: "y"},
		{name: "bearer prefix", in: map[string]any{"access_token": "Bearer z"}, want: "z"},
		{name: "nested", in: map[string]any{"data": map[string]any{"token": "n"}}, want: "n"},
		{name: "none", in: map[string]any{"user": "u"}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractToken(tt.in); got != tt.want {
				t.Errorf("extractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUsersRequests(t *testing.T) {
	srv, rec := fakeBackend(t, http.StatusOK, `[{"_id":"u1","email":"ana@escola.br","role":"aluno"}]`)
	api := newClient(srv.URL)
	ctx := context.Background()

	users, err := api.ListUsers(ctx, RoleAluno, "tok")
	require.NoError(t, err)
	assert.Equal(t, []ManagedUser{{ID: "u1", Email: "ana@escola.br", Role: RoleAluno}}, users)
	calls := rec.all()
	require.Len(t, calls, 1)
	assert.Equal(t, "/users/aluno", calls[0].Path)
	assert.Equal(t, "Bearer tok", calls[0].Auth)
}

func TestCreateAndUpdateUserBodies(t *testing.T) {
	srv, rec := fakeBackend(t, http.StatusCreated, `{"_id":"u2","email":"bia@escola.br","role":"professor"}`)
	api := newClient(srv.URL)
	ctx := context.Background()

	u, err := api.CreateUser(ctx, RoleProfessor, Credentials{Email: "bia@escola.br", Password: "s3"}, "tok")
	require.NoError(t, err)
	assert.Equal(t, ManagedUser{ID: "u2", Email: "bia@escola.br", Role: RoleProfessor}, u)

	_, err = api.UpdateUser(ctx, RoleProfessor, "u2", UserPatch{Email: "bia@escola.br", Role: RoleProfessor}, "tok")
	require.NoError(t, err)

	require.NoError(t, api.DeleteUser(ctx, RoleProfessor, "u2", "tok"))

	calls := rec.all()
	require.Len(t, calls, 3)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/users/professor", calls[0].Path)
	assert.Equal(t, map[string]any{"email": "bia@escola.br", "password": "s3", "role": "professor"}, calls[0].Body)

	assert.Equal(t, http.MethodPut, calls[1].Method)
	assert.Equal(t, "/users/professor/u2", calls[1].Path)
	assert.Equal(t, map[string]any{"email": "bia@escola.br", "role": "professor"}, calls[1].Body, "empty password is not sent")

	assert.Equal(t, http.MethodDelete, calls[2].Method)
	assert.Equal(t, "/users/professor/u2", calls[2].Path)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Professor ")
	require.NoError(t, err)
	assert.Equal(t, RoleProfessor, r)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestLongErrorBodyIsCutOnRuneBoundary(t *testing.T) {
	body := []byte(strings.Repeat("ã", 250) + " fim")
	msg := messageFromBody(body)
	assert.True(t, utf8.ValidString(msg))
	assert.True(t, strings.HasSuffix(msg, "..."))
	assert.Equal(t, 203, utf8.RuneCountInString(msg))
}
