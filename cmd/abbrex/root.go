package main

import (
	"errors"
	"io"
	"strings"

	"bennypowers.dev/abbrex/internal/config"
	"bennypowers.dev/abbrex/internal/log"
	"bennypowers.dev/abbrex/internal/resource"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var errNoAbbreviation = errors.New("no abbreviation given")

// app is the state shared by all commands, filled in before any runs
type app struct {
	configPath string
	verbose    bool
	quiet      bool

	cfg      *config.Config
	registry *resource.Registry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "abbrex",
		Short: "Expand Emmet-style abbreviations",
		Long: `abbrex expands markup abbreviations such as ul#nav>li.item$*3 and
stylesheet abbreviations such as p10! into element trees and declarations.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (.yaml, .yml, .json or .jsonc)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log debug messages")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "log errors only")

	root.AddCommand(
		a.expandCmd(),
		a.cssCmd(),
		a.colorCmd(),
		a.tokensCmd(),
		a.extractCmd(),
		a.detectCmd(),
		a.batchCmd(),
		versionCmd(),
	)
	return root
}

// setup applies logging flags, loads the config and the snippets it names
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch {
	case a.verbose:
		log.SetLevel(log.LevelDebug)
	case a.quiet:
		log.SetLevel(log.LevelError)
	}

	a.cfg = config.DefaultConfig()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	a.registry = resource.Default()
	if a.cfg.Snippets != "" {
		if err := a.registry.LoadFiles(cmd.Context(), a.cfg.Snippets); err != nil {
			return err
		}
	}
	return nil
}

// abbreviation returns the first argument, or reads it from piped stdin
func (a *app) abbreviation(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	stdin := cmd.InOrStdin()
	if isTerminal(stdin) {
		return "", errNoAbbreviation
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	abbr := strings.TrimSpace(string(data))
	if abbr == "" {
		return "", errNoAbbreviation
	}
	return abbr, nil
}

// isTerminal reports whether r is an interactive terminal
func isTerminal(r any) bool {
	f, ok := r.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
