package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"bennypowers.dev/abbrex/expand"
	"bennypowers.dev/abbrex/internal/color"
	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/parser/common"
	"bennypowers.dev/abbrex/internal/uriutil"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func (a *app) batchCmd() *cobra.Command {
	var (
		language string
		jobs     int
	)

	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Expand one abbreviation per line, concurrently",
		Long: `batch expands every non-empty line of a file, or of stdin, and prints
the results in input order. Lines that fail are reported on stderr.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := a.readBatch(cmd, args)
			if err != nil {
				return err
			}
			var lines []string
			for line := range strings.Lines(input) {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}

			results := make([]string, len(lines))
			failures := make([]error, len(lines))
			syntax := syntaxFor(language)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(max(jobs, 1))
			for i, abbr := range lines {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					results[i], failures[i] = a.expandLine(abbr, syntax)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for i, res := range results {
				if failures[i] != nil {
					failed++
					writeError(cmd.ErrOrStderr(), lines[i], failures[i])
					continue
				}
				fmt.Fprintln(out, res)
			}
			log.Debug("Expanded %d of %d abbreviations", len(lines)-failed, len(lines))
			if failed > 0 {
				return fmt.Errorf("%d of %d abbreviations failed", failed, len(lines))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "html", "language ID of the target document")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.GOMAXPROCS(0), "abbreviations expanded at once")
	return cmd
}

func (a *app) readBatch(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(uriutil.ToPath(args[0]))
	}
	return string(data), err
}

func (a *app) expandLine(abbr string, syntax common.Syntax) (string, error) {
	opts := expand.Options{Config: a.cfg, Resolver: a.registry}
	if syntax == common.Stylesheet {
		props, err := expand.Stylesheet(abbr, opts)
		if err != nil {
			return "", err
		}
		colors := color.Options{ShortHex: a.cfg.Stylesheet.ShortHex}
		parts := make([]string, len(props))
		for i, p := range props {
			parts[i] = formatProperty(p, colors)
		}
		return strings.Join(parts, " "), nil
	}

	tree, err := expand.Markup(abbr, opts)
	if err != nil {
		return "", err
	}
	return tree.String(), nil
}
