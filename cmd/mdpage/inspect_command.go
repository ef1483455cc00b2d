package main

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mdpage/internal/fileutil"
	"mdpage/internal/logging"
)

const inspectValueWidth = 80

func newInspectCommand(ctx *commandContext) *cobra.Command {
	opts := &convertOptions{}
	cmd := &cobra.Command{
		Use:   "inspect [source]",
		Short: "Describe the page a conversion would produce without writing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, release, err := ctx.converter(cmd, opts)
			if err != nil {
				return err
			}
			defer release()
			req, err := ctx.request(opts, args)
			if err != nil {
				return err
			}

			build, err := conv.Prepare(logging.WithRunID(cmd.Context(), ""), req)
			if err != nil {
				return err
			}
			doc := build.Document

			state := "missing"
			if same, err := fileutil.SameContents(build.OutputPath, build.Page); err != nil {
				state = "unreadable: " + err.Error()
			} else if same {
				state = "up to date"
			} else if exists(build.OutputPath) {
				state = "stale"
			}

			frontMatter := "none"
			if doc.FrontMatterErr != nil {
				frontMatter = "invalid: " + doc.FrontMatterErr.Error()
			} else if keys := doc.FrontMatterKeys(); len(keys) > 0 {
				frontMatter = strings.Join(keys, ", ")
			}

			lang := doc.Lang
			if lang == "" {
				lang = "(config)"
			}

			fields := []field{
				{"Source", doc.SourcePath},
				{"Output", build.OutputPath},
				{"Title", doc.Title},
				{"Lang", lang},
				{"Front matter", frontMatter},
				{"Source bytes", strconv.FormatInt(doc.Size, 10)},
				{"Embedded chars", strconv.Itoa(len([]rune(doc.Body)))},
				{"Page bytes", strconv.Itoa(len(build.Page))},
				{"SHA-256", hex.EncodeToString(doc.Checksum[:])},
				{"Output state", state},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderFields(filepath.Base(doc.SourcePath), fields, inspectValueWidth))
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Destination page (default: source path with .html extension)")
	cmd.Flags().StringVar(&opts.title, "title", "", "Page title override")
	cmd.Flags().BoolVar(&opts.fallback, "fallback", false, "Include the static rendering")
	cmd.Flags().BoolVar(&opts.stripFrontMatter, "strip-front-matter", false, "Embed only the text after front matter")
	return cmd
}
