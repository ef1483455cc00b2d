package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/frontmatter"

	"mdpage/internal/textutil"
)

// Document is a decoded Markdown source ready to be embedded in a page.
type Document struct {
	SourcePath string
	// Source is the full decoded file.
	Source string
	// Body is the text embedded in the page: Source verbatim, or the text
	// after the front matter block when stripping was requested.
	Body           string
	FrontMatter    map[string]any
	FrontMatterErr error
	Title          string
	Lang           string
	Checksum       [sha256.Size]byte
	Size           int64
}

// LoadOptions tune how a document is loaded.
type LoadOptions struct {
	// Title overrides every other title source.
	Title string
	// DefaultTitle is used when neither front matter nor a level-1 heading
	// provides one.
	DefaultTitle     string
	StripFrontMatter bool
}

// Load reads and decodes the Markdown file at path. Read failures are returned
// wrapped so callers can match fs.ErrNotExist and fs.ErrPermission.
func Load(ctx context.Context, path string, opts LoadOptions) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("read %s: is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	text, err := textutil.DecodeText(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	doc := &Document{
		SourcePath: path,
		Source:     text,
		Body:       text,
		Checksum:   sha256.Sum256(data),
		Size:       info.Size(),
	}

	meta, body, err := ParseFrontMatter(text)
	if err != nil {
		doc.FrontMatterErr = err
	} else {
		doc.FrontMatter = meta
		if opts.StripFrontMatter {
			doc.Body = body
		}
	}

	doc.Lang = metaString(doc.FrontMatter, "lang")
	doc.Title = resolveTitle(doc, body, opts)
	return doc, nil
}

// ParseFrontMatter splits a leading YAML ("---") or TOML ("+++") block from
// the Markdown body. Text without a delimiter on its first line is returned
// unchanged with nil metadata.
func ParseFrontMatter(text string) (map[string]any, string, error) {
	if !hasFrontMatterDelimiter(text) {
		return nil, text, nil
	}

	meta := map[string]any{}
	body, err := frontmatter.Parse(strings.NewReader(text), &meta)
	if err != nil {
		return nil, text, fmt.Errorf("parse front matter: %w", err)
	}
	return meta, string(body), nil
}

func hasFrontMatterDelimiter(text string) bool {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimRight(line, "\r \t")
	return line == "---" || line == "+++"
}

func resolveTitle(doc *Document, body string, opts LoadOptions) string {
	if title := strings.TrimSpace(opts.Title); title != "" {
		return title
	}
	if title := metaString(doc.FrontMatter, "title"); title != "" {
		return title
	}
	if title := FirstHeading([]byte(body)); title != "" {
		return title
	}
	if title := strings.TrimSpace(opts.DefaultTitle); title != "" {
		return title
	}
	base := filepath.Base(doc.SourcePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	value, ok := meta[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(value))
}

// FrontMatterKeys returns the front matter keys in sorted order.
func (d *Document) FrontMatterKeys() []string {
	keys := make([]string, 0, len(d.FrontMatter))
	for key := range d.FrontMatter {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
