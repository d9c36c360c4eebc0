// Copyright (c) 2025 Mural
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"strings"
	"time"

	"mural/cli/internal/backend"

	"github.com/pterm/pterm"
)

const dateLayout = "02/01/2006 15:04"

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

// excerpt shortens s to one line of at most n runes.
func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

var tipoStyles = map[string]*pterm.Style{
	"Comunicado": pterm.NewStyle(pterm.FgLightBlue),
	"Aviso":      pterm.NewStyle(pterm.FgYellow, pterm.Bold),
	"Outros":     pterm.NewStyle(pterm.FgGray),
}

func styledTipo(t string) string {
	if st, ok := tipoStyles[t]; ok {
		return st.Sprint(t)
	}
	return t
}

func renderPosts(posts []backend.Announcement) error {
	data := pterm.TableData{{"ID", "Tipo", "Título", "Autor", "Criado em"}}
	for _, p := range posts {
		data = append(data, []string{p.ID, styledTipo(p.Tipo), excerpt(p.Titulo, 40), p.Autor, formatDate(p.DataCriacao)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderPost(p backend.Announcement) {
	body := strings.Join([]string{
		pterm.NewStyle(pterm.FgLightCyan).Sprint("Autor:  ") + p.Autor,
		pterm.NewStyle(pterm.FgLightCyan).Sprint("Tipo:   ") + styledTipo(p.Tipo),
		pterm.NewStyle(pterm.FgLightCyan).Sprint("Data:   ") + formatDate(p.DataCriacao),
		"",
		p.Descricao,
	}, "\n")
	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint(p.Titulo)).
		Println(body)
}

func renderUsers(users []backend.ManagedUser) error {
	data := pterm.TableData{{"ID", "Email", "Role"}}
	for _, u := range users {
		data = append(data, []string{u.ID, u.Email, string(u.Role)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
