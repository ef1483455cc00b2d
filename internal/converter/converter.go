package converter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"mdpage/internal/config"
	"mdpage/internal/fileutil"
	"mdpage/internal/logging"
	"mdpage/internal/markdown"
	"mdpage/internal/page"
)

const (
	defaultFileMode  = 0o644
	lockRetryDelay   = 50 * time.Millisecond
	lockFilePrefix   = "mdpage-"
	lockFileSuffix   = ".lock"
	lockDigestLength = 16
)

// Options hold the page settings shared by every conversion.
type Options struct {
	Lang             string
	RendererURL      string
	GFM              bool
	Breaks           bool
	HintLabel        string
	HintText         string
	DefaultTitle     string
	Fallback         bool
	StripFrontMatter bool
	FileMode         os.FileMode
	// LockDir holds the advisory lock files; defaults to os.TempDir().
	LockDir string
}

// OptionsFromConfig maps the page section of cfg onto converter options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}
	return Options{
		Lang:             cfg.Page.Lang,
		RendererURL:      cfg.Page.RendererURL,
		GFM:              cfg.Page.GFM,
		Breaks:           cfg.Page.Breaks,
		HintLabel:        cfg.Page.HintLabel,
		HintText:         cfg.Page.HintText,
		DefaultTitle:     cfg.Page.Title,
		Fallback:         cfg.Page.Fallback,
		StripFrontMatter: cfg.Page.StripFrontMatter,
	}
}

// Request names one conversion.
type Request struct {
	Source string
	// Output defaults to the source path with its extension replaced by ".html".
	Output string
	// Title overrides the resolved document title.
	Title string
	// Force rewrites the destination even when it already holds the same bytes.
	Force bool
}

// Result describes a finished conversion.
type Result struct {
	SourcePath string
	OutputPath string
	Title      string
	Bytes      int
	Unchanged  bool
	Checksum   [sha256.Size]byte
}

// Build is a rendered page that has not been written yet.
type Build struct {
	Document   *markdown.Document
	OutputPath string
	Page       []byte
}

// Converter renders Markdown files into HTML pages.
type Converter struct {
	opts   Options
	logger *slog.Logger
}

// New constructs a Converter. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Converter {
	if opts.FileMode == 0 {
		opts.FileMode = defaultFileMode
	}
	if strings.TrimSpace(opts.LockDir) == "" {
		opts.LockDir = os.TempDir()
	}
	return &Converter{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "converter"),
	}
}

// Prepare loads the source and renders the page in memory.
func (c *Converter) Prepare(ctx context.Context, req Request) (*Build, error) {
	source, output, err := resolvePaths(req)
	if err != nil {
		return nil, err
	}
	logger := logging.WithContext(ctx, c.logger).With(
		logging.String(logging.FieldSource, source),
		logging.String(logging.FieldOutput, output),
	)

	doc, err := markdown.Load(ctx, source, markdown.LoadOptions{
		Title:            req.Title,
		DefaultTitle:     c.opts.DefaultTitle,
		StripFrontMatter: c.opts.StripFrontMatter,
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSourceAccess, err)
	}
	if doc.FrontMatterErr != nil {
		logger.Warn("front matter ignored",
			logging.Error(doc.FrontMatterErr),
			logging.String("impact", "title and lang fall back to headings and config"),
		)
	}

	p := page.Page{
		Lang:        c.opts.Lang,
		Title:       doc.Title,
		RendererURL: c.opts.RendererURL,
		GFM:         c.opts.GFM,
		Breaks:      c.opts.Breaks,
		HintLabel:   c.opts.HintLabel,
		HintText:    c.opts.HintText,
		Source:      doc.Body,
	}
	if doc.Lang != "" {
		p.Lang = doc.Lang
	}
	if c.opts.Fallback {
		fallback, err := markdown.RenderFallback(doc.Body, markdown.FallbackOptions{GFM: c.opts.GFM, Breaks: c.opts.Breaks})
		if err != nil {
			return nil, err
		}
		p.Fallback = fallback
	}

	rendered, err := page.Render(p)
	if err != nil {
		return nil, err
	}
	logger.Debug("page rendered",
		logging.String("title", doc.Title),
		logging.Int64("source_bytes", doc.Size),
		logging.Int("page_bytes", len(rendered)),
	)

	return &Build{Document: doc, OutputPath: output, Page: rendered}, nil
}

// Convert renders req.Source and writes the page. When the source cannot be
// read no file is created or modified.
func (c *Converter) Convert(ctx context.Context, req Request) (Result, error) {
	build, err := c.Prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	logger := logging.WithContext(ctx, c.logger).With(logging.String(logging.FieldOutput, build.OutputPath))

	result := Result{
		SourcePath: build.Document.SourcePath,
		OutputPath: build.OutputPath,
		Title:      build.Document.Title,
		Bytes:      len(build.Page),
		Checksum:   build.Document.Checksum,
	}

	unlock, err := c.lock(ctx, build.OutputPath)
	if err != nil {
		return Result{}, err
	}
	defer unlock()

	if !req.Force {
		same, err := fileutil.SameContents(build.OutputPath, build.Page)
		if err != nil {
			logger.Debug("existing page not comparable", logging.Error(err))
		}
		if same {
			result.Unchanged = true
			logger.Info("page up to date")
			return result, nil
		}
	}

	if err := fileutil.WriteFileAtomic(build.OutputPath, build.Page, c.opts.FileMode); err != nil {
		return Result{}, fmt.Errorf("%w: write %s: %w", ErrDestinationAccess, build.OutputPath, err)
	}
	logger.Info("page written", logging.Int("bytes", result.Bytes))
	return result, nil
}

// lockPath names the advisory lock guarding output.
func (c *Converter) lockPath(output string) string {
	sum := sha256.Sum256([]byte(output))
	name := lockFilePrefix + hex.EncodeToString(sum[:])[:lockDigestLength] + lockFileSuffix
	return filepath.Join(c.opts.LockDir, name)
}

func (c *Converter) lock(ctx context.Context, output string) (func(), error) {
	fileLock := flock.New(c.lockPath(output))

	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%w: lock %s: %w", ErrDestinationAccess, output, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: lock %s: not acquired", ErrDestinationAccess, output)
	}
	return func() {
		if err := fileLock.Unlock(); err != nil {
			c.logger.Debug("release lock failed", logging.Error(err))
		}
	}, nil
}

func resolvePaths(req Request) (string, string, error) {
	source := strings.TrimSpace(req.Source)
	if source == "" {
		return "", "", fmt.Errorf("%w: no source path given", ErrSourceAccess)
	}
	source, err := filepath.Abs(source)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrSourceAccess, err)
	}

	output := strings.TrimSpace(req.Output)
	if output == "" {
		output = config.SiblingHTMLPath(source)
	}
	output, err = filepath.Abs(output)
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrDestinationAccess, err)
	}
	if output == source {
		return "", "", fmt.Errorf("%w: output %s would overwrite the source", ErrDestinationAccess, output)
	}
	return source, output, nil
}
