package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePage()
	return c.normalizeLogging()
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.Source) == "" {
		c.Paths.Source = defaultSource
	}
	if c.Paths.Source, err = expandPath(strings.TrimSpace(c.Paths.Source)); err != nil {
		return fmt.Errorf("paths.source: %w", err)
	}
	if c.Paths.Output, err = expandPath(strings.TrimSpace(c.Paths.Output)); err != nil {
		return fmt.Errorf("paths.output: %w", err)
	}
	return nil
}

func (c *Config) normalizePage() {
	c.Page.Title = strings.TrimSpace(c.Page.Title)
	c.Page.Lang = strings.TrimSpace(c.Page.Lang)
	if c.Page.Lang == "" {
		c.Page.Lang = defaultLang
	}
	c.Page.RendererURL = strings.TrimSpace(c.Page.RendererURL)
	if c.Page.RendererURL == "" {
		c.Page.RendererURL = defaultRendererURL
	}
	c.Page.HintLabel = strings.TrimSpace(c.Page.HintLabel)
	c.Page.HintText = strings.TrimSpace(c.Page.HintText)
}

func (c *Config) normalizeLogging() error {
	if value, ok := os.LookupEnv("MDPAGE_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv("MDPAGE_LOG_FORMAT"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Format = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	file, err := expandPath(strings.TrimSpace(c.Logging.File))
	if err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	c.Logging.File = file
	return nil
}
