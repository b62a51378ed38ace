package main

import (
	"encoding/json"
	"fmt"
	"os"

	"bennypowers.dev/abbrex/internal/parser"
	"bennypowers.dev/abbrex/internal/uriutil"
	"github.com/spf13/cobra"
)

func (a *app) detectCmd() *cobra.Command {
	var (
		offset   int
		language string
	)

	cmd := &cobra.Command{
		Use:   "detect <file|uri>",
		Short: "Report which abbreviation syntax fits an offset of a document",
		Example: `  abbrex detect index.html --offset 120
  abbrex detect element.ts --offset 42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := uriutil.ToPath(args[0])
			if language == "" {
				var ok bool
				if language, ok = a.cfg.LanguageFor(path); !ok {
					return fmt.Errorf("no language configured for %s", path)
				}
			}

			source, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			ctx, ok := parser.Detect(language, string(source), offset)
			if !ok {
				return fmt.Errorf("unsupported language %q", language)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(ctx)
		},
	}

	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "byte offset in the file")
	cmd.Flags().StringVarP(&language, "language", "l", "", "language ID, detected from the file name by default")
	return cmd
}
