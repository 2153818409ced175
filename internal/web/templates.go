package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages.
func Templates() *template.Template {
	return template.Must(template.New("web").ParseFS(templateFS, "templates/*.html"))
}
