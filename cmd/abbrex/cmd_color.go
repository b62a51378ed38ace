package main

import (
	"fmt"

	"bennypowers.dev/abbrex/internal/color"
	"github.com/spf13/cobra"
)

func (a *app) colorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <value>",
		Short: "Show a CSS color in the notations abbreviations expand to",
		Example: `  abbrex color rebeccapurple
  abbrex color 'hsl(0 100% 50% / 0.5)'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := color.Parse(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hex:   %s\n", color.ToHex(c, false))
			fmt.Fprintf(out, "short: %s\n", color.ToHex(c, true))
			fmt.Fprintf(out, "rgb:   %s\n", color.ToRGB(c))
			_, err = fmt.Fprintf(out, "css:   %s\n", color.ToCSS(c, color.Options{ShortHex: a.cfg.Stylesheet.ShortHex}))
			return err
		},
	}
}
