package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/noticegen/internal/collector"
	"github.com/nao1215/noticegen/internal/config"
	"github.com/nao1215/noticegen/internal/database"
	"github.com/nao1215/noticegen/internal/log"
	"github.com/nao1215/noticegen/internal/model"
	"github.com/nao1215/noticegen/internal/pipeline"
	"github.com/nao1215/noticegen/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [project-dir]",
		Short: "Collect dependencies, validate licenses, and write notice files",
		Long: `Generate runs the full noticegen pipeline for a project directory:

1. Collect dependency metadata from Cargo (via 'cargo metadata') and
   pnpm (via 'pnpm list --json'). Each ecosystem is skipped when its
   manifest is absent.
2. Validate every declared license against the allow-list from the
   configuration file. Packages listed under ignore_packages are excluded
   from checking and from the report.
3. Write third-party-notice files in the enabled formats.

If any dependency fails the license check, the complete violation list is
printed, the process exits non-zero, and no file is written.

Examples:
  # Audit the current directory using .noticegen
  noticegen generate

  # Audit another project with an explicit config file
  noticegen generate -c compliance.yaml ~/src/myproject

  # Only write the Markdown report into docs/
  noticegen generate --markdown -o docs

Configuration file (.noticegen) example:
  allowed_licenses:
    - MIT
    - Apache-2.0
  ignore_packages:
    - my-internal-crate
  out_dir: "."
  filename: third-party-notices`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerateCmd,
	}

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .noticegen in project or home directory)")

	// Output flags
	cmd.Flags().StringP("out-dir", "o", "",
		"Directory for generated report files (overrides out_dir)")
	cmd.Flags().StringP("name", "n", "",
		"Filename stem for report files (overrides filename)")
	cmd.Flags().BoolP("json", "j", false,
		"Write only the JSON report (combinable with --markdown/--html)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Write only the Markdown report (combinable with --json/--html)")
	cmd.Flags().Bool("html", false,
		"Write only the HTML report (combinable with --json/--markdown)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the history database")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Cancel the run on Ctrl-C so child package-manager processes die too.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runGenerate(ctx, cfg, logger)
}

// buildConfig creates a Config from defaults, the config file, and flags,
// in that precedence order (flags win).
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.ProjectDir = args[0]
	}

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file it must exist.
	// Otherwise a missing .noticegen just means defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath, cfg.ProjectDir)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	outDir, err := cmd.Flags().GetString("out-dir")
	if err != nil {
		return nil, err
	}
	if outDir != "" {
		cfg.OutDir = outDir
	}

	name, err := cmd.Flags().GetString("name")
	if err != nil {
		return nil, err
	}
	if name != "" {
		cfg.Filename = name
	}

	// Format flags restrict output: naming any format disables the ones
	// not named. With no format flag the config file (or defaults) rules.
	jsonOnly, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}
	markdownOnly, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}
	htmlOnly, err := cmd.Flags().GetBool("html")
	if err != nil {
		return nil, err
	}
	if jsonOnly || markdownOnly || htmlOnly {
		cfg.ExportJSON = jsonOnly
		cfg.ExportMarkdown = markdownOnly
		cfg.ExportHTML = htmlOnly
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	if noSave {
		cfg.SaveToDB = false
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runGenerate assembles and executes the pipeline.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting audit",
		"project", cfg.ProjectDir,
		"formats", cfg.Formats(),
		"saveHistory", cfg.SaveToDB,
	)

	p := pipeline.New(pipeline.WithLogger(logger))

	p.AddStep(pipeline.NewCollectStep(logger,
		collector.NewCargo(cfg.ProjectDir, collector.WithCargoLogger(logger)),
		collector.NewPnpm(cfg.ProjectDir, collector.WithPnpmLogger(logger)),
	))
	p.AddStep(pipeline.NewValidateStep(cfg.AllowedLicenses, cfg.IgnorePackages))

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		p.AddStep(pipeline.NewSaveStep(db))
	}

	p.AddStep(pipeline.NewRenderStep(cfg.OutDir, cfg.Filename, report.Formats{
		JSON:     cfg.ExportJSON,
		Markdown: cfg.ExportMarkdown,
		HTML:     cfg.ExportHTML,
	}, logger))

	audit := model.NewAudit(cfg.ProjectDir)
	if err := p.Execute(ctx, audit); err != nil {
		return err
	}

	logger.Info("audit complete",
		"dependencies", len(audit.Report.Entries),
		"licenses", audit.Report.Licenses,
	)
	return nil
}
