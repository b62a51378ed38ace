package main

import (
	"fmt"
	"text/tabwriter"

	"bennypowers.dev/abbrex/internal/version"
	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skips config loading so a broken config still reports the version
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Current()
			out := cmd.OutOrStdout()
			if !verbose {
				_, err := fmt.Fprintln(out, info)
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 1, ' ', 0)
			fmt.Fprintf(tw, "version:\t%s\n", info.Version)
			fmt.Fprintf(tw, "commit:\t%s\n", info.Commit)
			fmt.Fprintf(tw, "tag:\t%s\n", info.Tag)
			fmt.Fprintf(tw, "built:\t%s\n", info.BuildTime)
			fmt.Fprintf(tw, "dirty:\t%t\n", info.Dirty)
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&verbose, "build", false, "print all build information")
	return cmd
}
