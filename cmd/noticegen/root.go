package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/noticegen/internal/audit"
)

// NewRootCmd creates the root command for noticegen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "noticegen",
		Short: "Generate third-party license notices for Cargo and pnpm projects",
		Long: `noticegen collects third-party dependency metadata from Cargo and pnpm,
validates every declared license against the project's allow-list, and
generates third-party-notice documents in JSON, Markdown, and HTML.

A run fails before writing any file when a dependency's license is not on
the allow-list, so the generated notices are always complete and approved.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
// License violations get special treatment: the complete violation list
// is printed so a user can fix every problem in one pass.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var violationErr *audit.ViolationError
		if errors.As(err, &violationErr) {
			fmt.Fprintln(os.Stderr, violationErr.Error())
			fmt.Fprint(os.Stderr, violationErr.Detail())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
