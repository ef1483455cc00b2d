package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mdpage/internal/config"
	"mdpage/internal/converter"
	"mdpage/internal/logging"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if level := flagValue(c.logLevelFlag); level != "" {
			cfg.Logging.Level = strings.ToLower(level)
		}
		if format := flagValue(c.logFormatFlag); format != "" {
			cfg.Logging.Format = strings.ToLower(format)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, func() error, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	return logging.NewFromConfig(cfg, cmd.ErrOrStderr())
}

// converter builds a converter for cmd. The release function closes the log
// file, if any, and must run once the command is done logging.
func (c *commandContext) converter(cmd *cobra.Command, opts *convertOptions) (*converter.Converter, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closeLog, err := c.logger(cmd)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "close log file: %v\n", err)
		}
	}
	convOpts := converter.OptionsFromConfig(cfg)
	if cmd.Flags().Changed("fallback") {
		convOpts.Fallback = opts.fallback
	}
	if cmd.Flags().Changed("strip-front-matter") {
		convOpts.StripFrontMatter = opts.stripFrontMatter
	}
	return converter.New(convOpts, logger), release, nil
}

func (c *commandContext) request(opts *convertOptions, args []string) (converter.Request, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return converter.Request{}, err
	}
	req := converter.Request{
		Source: cfg.Paths.Source,
		Output: strings.TrimSpace(opts.output),
		Title:  strings.TrimSpace(opts.title),
		Force:  opts.force,
	}
	if len(args) > 0 {
		req.Source = args[0]
	}
	if req.Output == "" && len(args) == 0 {
		req.Output = cfg.OutputPath(req.Source)
	}
	return req, nil
}

func flagValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return strings.TrimSpace(*flag)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
