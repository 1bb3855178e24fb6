// Package site renders the gallery model into HTML pages: one overview page
// and one detail page per group with a description document. Templates are
// parsed once at run start and passed explicitly into render calls.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/gallerybuilder/internal/work"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed templates/style.css
var styleCSS []byte

// Templates holds the parsed page templates for one run.
type Templates struct {
	t *template.Template
}

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*Templates, error) {
	t, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Templates{t: t}, nil
}

func (t *Templates) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

// StaticItems returns the embedded site assets as work items.
func StaticItems() []work.Item {
	return []work.Item{
		&work.StaticItem{Content: styleCSS, Path: "css/style.css"},
	}
}
