// Package web embeds the HTML templates so the binary and the tests do not
// depend on the working directory.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page; each is addressed by its file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(files, "templates/*.html")
}
