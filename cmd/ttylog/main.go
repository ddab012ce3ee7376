// Package main provides the ttylog CLI, which demonstrates the logger
// output and lists the colour palette.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipp01105/ttylog/logger"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := logger.DefaultOptions()
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "ttylog",
		Short: "Colourised, rotating log output for Go programs",
		Long: `ttylog renders log events as one aligned line each, coloured on terminals,
and writes them to stderr and optionally to a size- or time-rotated file.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if configPath == "" {
				return nil
			}
			loaded, err := logger.LoadOptions(configPath)
			if err != nil {
				return err
			}
			loaded.MergeFlags(opts, cmd.Flags())
			opts = loaded
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "read log options from a YAML or JSON file")
	opts.RegisterFlags(flags)

	completionErr := opts.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	rootCmd.AddCommand(
		newDemoCommand(func() logger.Options { return opts }),
		newColorsCommand(),
	)
	return rootCmd
}
