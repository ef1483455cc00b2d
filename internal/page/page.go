// Package page renders the self-contained HTML page that carries an escaped
// Markdown source and the script that renders it in the browser.
package page

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"mdpage/internal/textutil"
)

//go:embed page.html.tmpl
var templates embed.FS

var pageTemplate = template.Must(
	template.New("page.html.tmpl").
		Funcs(template.FuncMap{
			"escape":        textutil.Escape,
			"unescapeChain": unescapeChain,
		}).
		ParseFS(templates, "page.html.tmpl"),
)

// Page holds the values interpolated into the template. Source is the raw
// Markdown; it is escaped during rendering. Fallback must already be
// sanitized HTML.
type Page struct {
	Lang        string
	Title       string
	RendererURL string
	GFM         bool
	Breaks      bool
	HintLabel   string
	HintText    string
	Source      string
	Fallback    string
}

// Render executes the page template. The output depends only on p, so equal
// pages render to identical bytes.
func Render(p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

// SourceRegion returns the escaped text between the md-source script tags of
// a rendered page, or false when the page has no such region.
func SourceRegion(rendered []byte) ([]byte, bool) {
	start := bytes.Index(rendered, []byte(sourceOpenTag))
	if start < 0 {
		return nil, false
	}
	start += len(sourceOpenTag)
	end := bytes.Index(rendered[start:], []byte(sourceCloseTag))
	if end < 0 {
		return nil, false
	}
	return rendered[start : start+end], true
}

// unescapeChain emits the JavaScript replace calls that undo Escape, one per
// entity in textutil.Entities order.
func unescapeChain() string {
	var b strings.Builder
	for _, entity := range textutil.Entities {
		char := textutil.Unescape(entity)
		quoted := "'" + char + "'"
		if char == "'" {
			quoted = `"'"`
		}
		fmt.Fprintf(&b, ".replace(/%s/g, %s)", entity, quoted)
	}
	return b.String()
}

const (
	sourceOpenTag  = `<script type="text/template" id="md-source">`
	sourceCloseTag = `</script>`
)
