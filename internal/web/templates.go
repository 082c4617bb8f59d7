package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

type Templates struct {
	set *template.Template
}

func LoadTemplates() (*Templates, error) {
	set, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Templates{set: set}, nil
}

func (t *Templates) Execute(w io.Writer, name string, data any) error {
	return t.set.ExecuteTemplate(w, name, data)
}
