package main

import (
	"github.com/spf13/cobra"

	"mdpage/internal/logging"
)

type convertOptions struct {
	output           string
	title            string
	force            bool
	fallback         bool
	stripFrontMatter bool
}

func bindConvertFlags(cmd *cobra.Command, opts *convertOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "Destination page (default: source path with .html extension)")
	flags.StringVar(&opts.title, "title", "", "Page title (default: front matter title or first heading)")
	flags.BoolVar(&opts.force, "force", false, "Rewrite the page even when it is already up to date")
	flags.BoolVar(&opts.fallback, "fallback", false, "Embed a static rendering for readers without JavaScript")
	flags.BoolVar(&opts.stripFrontMatter, "strip-front-matter", false, "Embed only the text after YAML/TOML front matter")
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "convert [source]",
		Short: "Convert a Markdown file into an HTML page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, opts, args)
		},
	}
	bindConvertFlags(cmd, opts)
	return cmd
}

func runConvert(cmd *cobra.Command, ctx *commandContext, opts *convertOptions, args []string) error {
	conv, release, err := ctx.converter(cmd, opts)
	if err != nil {
		return err
	}
	defer release()
	req, err := ctx.request(opts, args)
	if err != nil {
		return err
	}

	runCtx := logging.WithRunID(cmd.Context(), "")
	result, err := conv.Convert(runCtx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Unchanged {
		printStatus(out, statusUnchanged, result.OutputPath)
	} else {
		printStatus(out, statusCreated, result.OutputPath)
	}
	return nil
}
