// Package web embeds the page template and its static assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates static
var files embed.FS

// Templates parses the page templates with the given helper functions
func Templates(funcs template.FuncMap) (*template.Template, error) {
	base := template.FuncMap{
		"lower": strings.ToLower,
		"join":  strings.Join,
	}
	for name, fn := range funcs {
		base[name] = fn
	}
	return template.New("pages").Funcs(base).ParseFS(files, "templates/*.html")
}

// Static returns the asset tree served under /static
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// the directory is embedded at build time
		panic(err)
	}
	return sub
}
