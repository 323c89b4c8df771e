package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/noticegen/internal/audit"
	"github.com/nao1215/noticegen/internal/config"
	"github.com/nao1215/noticegen/internal/database"
)

// NewCompareCmd creates the compare command.
// This command compares audit runs stored in the history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [project-dir]",
		Short: "Compare audit runs recorded in the history database",
		Long: `Compare shows how a project's third-party dependencies changed between
two successful noticegen runs:

- Dependencies added since the previous run
- Dependencies removed since the previous run
- Dependencies whose declared license set changed

By default the two most recent runs for the project are compared.
The comparison requires at least two recorded runs; use
'noticegen generate' to record runs.

Examples:
  # Compare the two most recent runs for the current directory
  noticegen compare

  # List recorded runs for a project
  noticegen compare --list ~/src/myproject

  # Compare the latest run with a specific historical run by ID
  noticegen compare --with-run-id 5

  # Output the comparison as JSON
  noticegen compare --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List recorded runs for the project")
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare the latest run with a specific run by ID (use --list to see IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	projectDir := "."
	if len(args) > 0 {
		projectDir = args[0]
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	list, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if list {
		return listRunHistory(ctx, cmd, db, projectDir)
	}

	withRunID, err := cmd.Flags().GetInt64("with-run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	return runComparison(ctx, cmd, db, projectDir, withRunID, jsonOutput)
}

// listRunHistory prints the recorded runs for a project.
func listRunHistory(ctx context.Context, cmd *cobra.Command, db *database.AuditDB, projectDir string) error {
	summaries, err := db.ListRuns(ctx, projectDir)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No recorded runs for %s (run 'noticegen generate' first)\n", projectDir)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded runs for %s:\n", projectDir)
	for _, s := range summaries {
		fmt.Fprintf(cmd.OutOrStdout(), "  #%d  %s  %d dependencies\n",
			s.ID, s.CreatedAt.UTC().Format("2006-01-02 15:04:05"), s.EntryCount)
	}
	return nil
}

// runComparison diffs the latest run against the previous one, or against
// a specific run when withRunID is set.
func runComparison(ctx context.Context, cmd *cobra.Command, db *database.AuditDB, projectDir string, withRunID int64, jsonOutput bool) error {
	latest, err := db.LatestRuns(ctx, projectDir, 2)
	if err != nil {
		return err
	}
	if len(latest) == 0 {
		return fmt.Errorf("no recorded runs for %s (run 'noticegen generate' first)", projectDir)
	}

	newRun := latest[0]
	var oldRun database.Run

	if withRunID != 0 {
		run, err := db.GetRun(ctx, withRunID)
		if err != nil {
			return err
		}
		oldRun = *run
	} else {
		if len(latest) < 2 {
			return fmt.Errorf("need at least two recorded runs for %s to compare", projectDir)
		}
		oldRun = latest[1]
	}

	diff := audit.DiffRuns(oldRun.Entries, newRun.Entries)

	if jsonOutput {
		out := struct {
			ProjectDir string         `json:"project_dir"`
			OldRunID   int64          `json:"old_run_id"`
			NewRunID   int64          `json:"new_run_id"`
			Diff       *audit.RunDiff `json:"diff"`
		}{projectDir, oldRun.ID, newRun.ID, diff}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printDiff(cmd, &oldRun, &newRun, diff)
	return nil
}

// printDiff renders a human-readable comparison.
func printDiff(cmd *cobra.Command, oldRun, newRun *database.Run, diff *audit.RunDiff) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Comparing run #%d (%s) with run #%d (%s)\n",
		oldRun.ID, oldRun.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		newRun.ID, newRun.CreatedAt.UTC().Format("2006-01-02 15:04:05"))

	if diff.Empty() {
		fmt.Fprintln(out, "No dependency changes.")
		return
	}

	if len(diff.Added) > 0 {
		fmt.Fprintf(out, "\nAdded (%d):\n", len(diff.Added))
		for _, r := range diff.Added {
			fmt.Fprintf(out, "  + %s@%s (%s) [%s]\n", r.Name, r.Version, r.Source, r.LicenseText())
		}
	}

	if len(diff.Removed) > 0 {
		fmt.Fprintf(out, "\nRemoved (%d):\n", len(diff.Removed))
		for _, r := range diff.Removed {
			fmt.Fprintf(out, "  - %s@%s (%s) [%s]\n", r.Name, r.Version, r.Source, r.LicenseText())
		}
	}

	if len(diff.LicenseChanges) > 0 {
		fmt.Fprintf(out, "\nLicense changes (%d):\n", len(diff.LicenseChanges))
		for _, c := range diff.LicenseChanges {
			fmt.Fprintf(out, "  ! %s (%s): %s -> %s (version %s -> %s)\n",
				c.Name, c.Source,
				joinOrNone(c.OldLicenses), joinOrNone(c.NewLicenses),
				c.OldVersion, c.NewVersion)
		}
	}
}

// joinOrNone joins license identifiers for display.
func joinOrNone(licenses []string) string {
	if len(licenses) == 0 {
		return "none"
	}
	return strings.Join(licenses, ", ")
}
