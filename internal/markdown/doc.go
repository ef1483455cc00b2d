// Package markdown loads Markdown sources for page generation.
//
// Loading decodes the file as text, separates optional YAML or TOML front
// matter, and resolves a page title. The page itself is rendered in the
// browser; this package only inspects the document with goldmark to find its
// first heading and, when asked, to produce a sanitized static fallback.
package markdown
