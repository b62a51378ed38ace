package main

import (
	"fmt"
	"strings"

	"bennypowers.dev/abbrex/expand"
	"bennypowers.dev/abbrex/internal/color"
	"bennypowers.dev/abbrex/internal/parser/stylesheet"
	"bennypowers.dev/abbrex/internal/token"
	"github.com/spf13/cobra"
)

func (a *app) cssCmd() *cobra.Command {
	var value bool

	cmd := &cobra.Command{
		Use:   "css [abbreviation]",
		Short: "Expand a stylesheet abbreviation",
		Example: `  abbrex css 'p10!'
  abbrex css 'm10-auto+c#fc0'
  abbrex css --value '10-20'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			abbr, err := a.abbreviation(cmd, args)
			if err != nil {
				return err
			}
			return a.writeProperties(cmd, abbr, value)
		},
	}

	cmd.Flags().BoolVar(&value, "value", false, "expand as a property value, without a name")
	return cmd
}

func (a *app) writeProperties(cmd *cobra.Command, abbr string, value bool) error {
	props, err := expand.Stylesheet(abbr, expand.Options{Config: a.cfg, Resolver: a.registry, Value: value})
	if err != nil {
		return report(cmd.ErrOrStderr(), abbr, err)
	}
	w := cmd.OutOrStdout()
	opts := color.Options{ShortHex: a.cfg.Stylesheet.ShortHex}
	for _, p := range props {
		if _, err := fmt.Fprintln(w, formatProperty(p, opts)); err != nil {
			return err
		}
	}
	return nil
}

// formatProperty renders a declaration with colors in CSS notation
func formatProperty(p stylesheet.Property, opts color.Options) string {
	values := make([]string, len(p.Value))
	for i, v := range p.Value {
		values[i] = formatValue(v, opts)
	}
	out := strings.Join(values, ", ")
	if p.Important {
		out += " !important"
	}
	if p.Name == "" {
		return out
	}
	return p.Name + ": " + out + ";"
}

func formatValue(v stylesheet.CSSValue, opts color.Options) string {
	parts := make([]string, len(v.Value))
	for i, item := range v.Value {
		switch item := item.(type) {
		case *stylesheet.ColorValue:
			parts[i] = color.ToCSS(token.Color{R: item.R, G: item.G, B: item.B, A: item.A}, opts)
		case *stylesheet.FunctionCall:
			args := make([]string, len(item.Arguments))
			for j, arg := range item.Arguments {
				args[j] = formatValue(arg, opts)
			}
			parts[i] = item.Name + "(" + strings.Join(args, ", ") + ")"
		default:
			parts[i] = item.String()
		}
	}
	return strings.Join(parts, " ")
}
