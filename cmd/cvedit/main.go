package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tendant/content-editor/pkg/contentedit"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "cvedit",
		Short: "Content value editor - JSON field editing from the command line",
		Long: `Content value editor command line interface

Classifies, formats and edits JSON content values with the same transforms
the editor server applies. Values are read from a file argument, or from
standard input when the argument is omitted or "-".`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	rootCmd.AddCommand(NewClassifyCommand())
	rootCmd.AddCommand(NewFmtCommand())
	rootCmd.AddCommand(NewApplyCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewTilesCommand())

	return rootCmd
}

// readValue reads the value named by args[0], or standard input.
func readValue(cmd *cobra.Command, args []string) (contentedit.Value, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return contentedit.Null(), fmt.Errorf("failed to read input: %w", err)
	}
	v, err := contentedit.Parse(data)
	if err != nil {
		return contentedit.Null(), fmt.Errorf("failed to parse input: %w", err)
	}
	slog.Debug("Value read", "kind", v.Kind().String(), "bytes", len(data))
	return v, nil
}

func writeValue(cmd *cobra.Command, v contentedit.Value, compact bool) error {
	out := contentedit.MarshalIndent(v)
	if compact {
		out = contentedit.Marshal(v)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
	return err
}
