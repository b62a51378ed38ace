package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"bennypowers.dev/abbrex/expand"
	"bennypowers.dev/abbrex/internal/parser/common"
	"github.com/spf13/cobra"
)

// stylesheetLanguages are language IDs whose abbreviations are stylesheet ones
var stylesheetLanguages = map[string]bool{
	"css":  true,
	"scss": true,
	"sass": true,
	"less": true,
}

func (a *app) expandCmd() *cobra.Command {
	var (
		wrap     string
		asJSON   bool
		language string
	)

	cmd := &cobra.Command{
		Use:   "expand [abbreviation]",
		Short: "Expand a markup abbreviation",
		Example: `  abbrex expand 'ul#nav>li.item$*3'
  abbrex expand 'ul>li*' --wrap list.txt
  echo 'p10!' | abbrex expand --language css`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abbr, err := a.abbreviation(cmd, args)
			if err != nil {
				return err
			}

			if syntaxFor(language) == common.Stylesheet {
				return a.writeProperties(cmd, abbr, false)
			}

			opts := expand.Options{Config: a.cfg, Resolver: a.registry}
			if wrap != "" {
				text, err := a.readWrap(cmd, wrap)
				if err != nil {
					return err
				}
				opts.Paste = &expand.PasteSpec{Text: text}
			}

			tree, err := expand.Markup(abbr, opts)
			if err != nil {
				return report(cmd.ErrOrStderr(), abbr, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(tree)
			}
			_, err = fmt.Fprintln(out, tree.String())
			return err
		},
	}

	cmd.Flags().StringVarP(&wrap, "wrap", "w", "", "file whose text the abbreviation wraps, - for stdin")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the expanded tree as JSON")
	cmd.Flags().StringVarP(&language, "language", "l", "html", "language ID of the target document")
	return cmd
}

func (a *app) readWrap(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read text to wrap: %w", err)
	}
	return string(data), nil
}

// syntaxFor maps a language ID to the abbreviation syntax it expects
func syntaxFor(language string) common.Syntax {
	if stylesheetLanguages[language] {
		return common.Stylesheet
	}
	return common.Markup
}
