package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePage(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.Source == "" {
		return errors.New("paths.source must be set")
	}
	if c.Paths.Output != "" && filepath.Clean(c.Paths.Output) == filepath.Clean(c.Paths.Source) {
		return errors.New("paths.output must differ from paths.source")
	}
	return nil
}

func (c *Config) validatePage() error {
	parsed, err := url.Parse(c.Page.RendererURL)
	if err != nil {
		return fmt.Errorf("page.renderer_url: %w", err)
	}
	switch parsed.Scheme {
	case "http", "https":
	case "":
		if !strings.HasPrefix(c.Page.RendererURL, "//") && parsed.Path == "" {
			return fmt.Errorf("page.renderer_url: %q is not a usable script location", c.Page.RendererURL)
		}
	default:
		return fmt.Errorf("page.renderer_url: unsupported scheme %q", parsed.Scheme)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.Logging.File != "" {
		file := filepath.Clean(c.Logging.File)
		if file == filepath.Clean(c.Paths.Source) || (c.Paths.Output != "" && file == filepath.Clean(c.Paths.Output)) {
			return errors.New("logging.file must differ from paths.source and paths.output")
		}
	}
	return nil
}
