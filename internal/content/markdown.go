package content

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// raw HTML in content is dropped; goldmark escapes it unless WithUnsafe is set
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown renders a content field to HTML
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// MarkdownOrText renders src, falling back to escaped text if rendering fails
func MarkdownOrText(src string) template.HTML {
	out, err := Markdown(src)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return out
}
