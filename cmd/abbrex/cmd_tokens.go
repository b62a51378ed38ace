package main

import (
	"fmt"
	"text/tabwriter"

	"bennypowers.dev/abbrex/expand"
	"github.com/spf13/cobra"
)

func (a *app) tokensCmd() *cobra.Command {
	var (
		stylesheet bool
		value      bool
	)

	cmd := &cobra.Command{
		Use:   "tokens [abbreviation]",
		Short: "Print the tokens of an abbreviation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abbr, err := a.abbreviation(cmd, args)
			if err != nil {
				return err
			}

			var tokens []expand.Token
			if stylesheet || value {
				tokens, err = expand.TokenizeValue(abbr, value)
			} else {
				tokens, err = expand.TokenizeMarkup(abbr)
			}
			if err != nil {
				return report(cmd.ErrOrStderr(), abbr, err)
			}

			out := cmd.OutOrStdout()
			s := newStyles(out)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, tok := range tokens {
				fmt.Fprintf(tw, "%s\t%s\t%q\n",
					s.muted.Render(fmt.Sprintf("%d:%d", tok.Start, tok.End)),
					s.kind.Render(tok.Kind.String()),
					tok.String())
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVarP(&stylesheet, "stylesheet", "s", false, "use the stylesheet tokenizer")
	cmd.Flags().BoolVar(&value, "value", false, "tokenize a stylesheet value")
	return cmd
}
