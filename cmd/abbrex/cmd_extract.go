package main

import (
	"encoding/json"
	"errors"

	"bennypowers.dev/abbrex/internal/extract"
	"bennypowers.dev/abbrex/internal/position"
	"github.com/spf13/cobra"
)

var errNotFound = errors.New("no abbreviation found")

// extractResult reports offsets as UTF-16 columns
type extractResult struct {
	Abbreviation string `json:"abbreviation"`
	Location     int    `json:"location"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
}

func (a *app) extractCmd() *cobra.Command {
	var (
		line       string
		column     int
		lookAhead  bool
		prefix     string
		stylesheet bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Find the abbreviation left of a column in a line",
		Example: `  abbrex extract --line '<div>ul>li'
  abbrex extract --line 'foo bar[a]' --column 9`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pos := -1
			if column >= 0 {
				pos = position.UTF16ToByteOffset(line, column)
			}

			res, ok := extract.Abbreviation(line, pos, extract.Options{
				LookAhead:  lookAhead,
				Stylesheet: stylesheet,
				Prefix:     prefix,
			})
			if !ok {
				return errNotFound
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(extractResult{
				Abbreviation: res.Abbreviation,
				Location:     position.ByteOffsetToUTF16(line, res.Location),
				Start:        position.ByteOffsetToUTF16(line, res.Start),
				End:          position.ByteOffsetToUTF16(line, res.End),
			})
		},
	}

	cmd.Flags().StringVar(&line, "line", "", "the line of text")
	cmd.Flags().IntVar(&column, "column", -1, "caret column in UTF-16 code units, end of line when negative")
	cmd.Flags().BoolVar(&lookAhead, "lookahead", true, "skip auto-closed brackets and quotes after the caret")
	cmd.Flags().StringVar(&prefix, "prefix", "", "text that must precede the abbreviation, such as < in JSX")
	cmd.Flags().BoolVarP(&stylesheet, "stylesheet", "s", false, "extract a stylesheet abbreviation")
	_ = cmd.MarkFlagRequired("line")
	return cmd
}
