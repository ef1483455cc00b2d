package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// FallbackOptions mirror the options handed to the browser renderer so the
// static copy reads the same as the live one.
type FallbackOptions struct {
	GFM    bool
	Breaks bool
}

// RenderFallback renders body to HTML for readers without JavaScript. Raw HTML
// in the source is dropped by goldmark and the result is sanitized with the
// bluemonday UGC policy.
func RenderFallback(body string, opts FallbackOptions) (string, error) {
	var buf bytes.Buffer
	if err := newFallbackEngine(opts).Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("render fallback: %w", err)
	}
	return string(fallbackPolicy().SanitizeBytes(buf.Bytes())), nil
}

func newFallbackEngine(opts FallbackOptions) goldmark.Markdown {
	var rendererOptions []renderer.Option
	if opts.Breaks {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if opts.GFM {
		engineOptions = append(engineOptions, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(engineOptions...)
}

func fallbackPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	policy.AllowAttrs("checked", "disabled").OnElements("input")
	policy.AllowAttrs("type").Matching(bluemonday.SpaceSeparatedTokens).OnElements("input")
	return policy
}
