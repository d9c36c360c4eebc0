// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"net/http"
	"time"

	"mural/cli/internal/logging"
)

// Post is the backend wire shape of an announcement.
type Post struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	Tipo      string `json:"tipo"`
	CreatedAt string `json:"createdAt"`
}

// Announcement is the shape the CLI works with.
// DataAtualizacao always mirrors DataCriacao: the backend keeps no update time.
type Announcement struct {
	ID              string    `json:"id"`
	Titulo          string    `json:"titulo"`
	Autor           string    `json:"autor"`
	Tipo            string    `json:"tipo"`
	Descricao       string    `json:"descricao"`
	DataCriacao     time.Time `json:"dataCriacao"`
	DataAtualizacao time.Time `json:"dataAtualizacao"`
}

// PostInput is the create/update body.
type PostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Tipo    string `json:"tipo"`
}

// ToAnnouncement renames the wire fields and parses the creation timestamp.
// An unparseable timestamp yields the zero time rather than failing the whole list.
func (p Post) ToAnnouncement() Announcement {
	created := parseTimestamp(p.CreatedAt)
	return Announcement{
		ID:              p.ID,
		Titulo:          p.Title,
		Autor:           p.Author,
		Tipo:            p.Tipo,
		Descricao:       p.Content,
		DataCriacao:     created,
		DataAtualizacao: created,
	}
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.000Z0700", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	logging.Debugf("backend: unparseable createdAt %q", s)
	return time.Time{}
}

// ListPosts calls GET /posts. No authentication required.
func (h *HTTP) ListPosts(ctx context.Context) ([]Announcement, error) {
	var posts []Post
	if err := h.do(ctx, "list posts", http.MethodGet, h.endpoints.Posts, "", nil, &posts); err != nil {
		return nil, err
	}
	out := make([]Announcement, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ToAnnouncement())
	}
	return out, nil
}

// CreatePost calls POST /posts with Authorization header.
func (h *HTTP) CreatePost(ctx context.Context, in PostInput, token string) (Announcement, error) {
	if token == "" {
		return Announcement{}, ErrMissingToken
	}
	var p Post
	if err := h.do(ctx, "create post", http.MethodPost, h.endpoints.Posts, token, in, &p); err != nil {
		return Announcement{}, err
	}
	return p.ToAnnouncement(), nil
}

// UpdatePost calls PUT /posts/{id} with Authorization header.
func (h *HTTP) UpdatePost(ctx context.Context, id string, in PostInput, token string) (Announcement, error) {
	if token == "" {
		return Announcement{}, ErrMissingToken
	}
	var p Post
	if err := h.do(ctx, "update post", http.MethodPut, h.endpoints.post(id), token, in, &p); err != nil {
		return Announcement{}, err
	}
	return p.ToAnnouncement(), nil
}

// DeletePost calls DELETE /posts/{id} with Authorization header.
func (h *HTTP) DeletePost(ctx context.Context, id string, token string) error {
	if token == "" {
		return ErrMissingToken
	}
	return h.do(ctx, "delete post", http.MethodDelete, h.endpoints.post(id), token, nil, nil)
}
