package testsupport

import (
	"path/filepath"
	"testing"

	"mdpage/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose source and output live in a unique temp
// directory per test. The source file itself is not created.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Source = filepath.Join(base, "notes.md")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSourceName places the source file under the test base directory.
func WithSourceName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.Source = filepath.Join(b.baseDir, name)
	}
}

// WithOutputName sets an explicit page destination under the test base directory.
func WithOutputName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.Output = filepath.Join(b.baseDir, name)
	}
}

// WithPage mutates the page section.
func WithPage(fn func(*config.Page)) ConfigOption {
	return func(b *configBuilder) {
		fn(&b.cfg.Page)
	}
}

// WithoutHint clears the print hint.
func WithoutHint() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Page.HintLabel = ""
		b.cfg.Page.HintText = ""
	}
}
