package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/noticegen/internal/audit"
	"github.com/nao1215/noticegen/internal/collector"
	"github.com/nao1215/noticegen/internal/database"
	"github.com/nao1215/noticegen/internal/model"
	"github.com/nao1215/noticegen/internal/report"
)

// CollectStep runs every configured collector and merges their records
// into the audit state.
//
// The collectors have no data dependency on each other, so they run
// concurrently under an errgroup; each writes into its own slot and the
// merge afterwards always appends in collector order, keeping the merged
// record order deterministic regardless of which collector finishes
// first.
type CollectStep struct {
	// collectors is the ordered list of ecosystem collectors.
	collectors []collector.Collector

	// logger for structured logging.
	logger *slog.Logger
}

// NewCollectStep creates a collection step over the given collectors.
func NewCollectStep(logger *slog.Logger, collectors ...collector.Collector) *CollectStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectStep{
		collectors: collectors,
		logger:     logger,
	}
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return "collect"
}

// Do executes every collector and appends the results in collector order.
func (s *CollectStep) Do(ctx context.Context, a *model.Audit) error {
	results := make([][]model.DependencyRecord, len(s.collectors))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range s.collectors {
		i, c := i, c
		g.Go(func() error {
			records, err := c.Collect(ctx)
			if err != nil {
				return err
			}
			s.logger.Debug("collector finished",
				"collector", c.Name(),
				"records", len(records),
			)
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, records := range results {
		a.Records = append(a.Records, records...)
	}
	return nil
}

// ValidateStep checks the collected records against the allow-list.
// On success it stores the notice report in the audit state; on failure
// it stores the violations and returns an *audit.ViolationError so the
// pipeline aborts before anything is rendered or saved.
type ValidateStep struct {
	// allowedLicenses is the license allow-list.
	allowedLicenses []string

	// ignorePackages is the set of package names excluded from checking.
	ignorePackages []string
}

// NewValidateStep creates a validation step with the given policy.
func NewValidateStep(allowedLicenses, ignorePackages []string) *ValidateStep {
	return &ValidateStep{
		allowedLicenses: allowedLicenses,
		ignorePackages:  ignorePackages,
	}
}

// Name returns the step name.
func (s *ValidateStep) Name() string {
	return "validate"
}

// Do runs the validator over the collected records.
func (s *ValidateStep) Do(_ context.Context, a *model.Audit) error {
	rpt, violations := audit.Validate(a.Records, s.allowedLicenses, s.ignorePackages, time.Now())
	if len(violations) > 0 {
		a.Violations = violations
		return &audit.ViolationError{Violations: violations}
	}
	a.Report = rpt
	return nil
}

// SaveStep records the validated run in the history database so later
// runs can be compared against it. It only ever executes after a
// successful validation because the pipeline is fail-fast.
type SaveStep struct {
	// db is the history database, already opened by the caller.
	db *database.AuditDB
}

// NewSaveStep creates a persistence step writing to db.
func NewSaveStep(db *database.AuditDB) *SaveStep {
	return &SaveStep{db: db}
}

// Name returns the step name.
func (s *SaveStep) Name() string {
	return "save_history"
}

// Do saves the run.
func (s *SaveStep) Do(ctx context.Context, a *model.Audit) error {
	_, err := s.db.SaveRun(ctx, a.ProjectDir, a.Report)
	return err
}

// RenderStep writes the enabled report files for a validated run.
type RenderStep struct {
	// outDir is the output directory.
	outDir string

	// filename is the report filename stem.
	filename string

	// formats selects which files to emit.
	formats report.Formats

	// logger for structured logging.
	logger *slog.Logger
}

// NewRenderStep creates a rendering step.
func NewRenderStep(outDir, filename string, formats report.Formats, logger *slog.Logger) *RenderStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &RenderStep{
		outDir:   outDir,
		filename: filename,
		formats:  formats,
		logger:   logger,
	}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do writes the report files.
func (s *RenderStep) Do(_ context.Context, a *model.Audit) error {
	paths, err := report.RenderFiles(a.Report, s.outDir, s.filename, s.formats)
	if err != nil {
		return err
	}
	for _, p := range paths {
		s.logger.Info("wrote report", "path", p)
	}
	return nil
}
