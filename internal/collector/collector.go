package collector

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/nao1215/noticegen/internal/model"
)

// Collector produces normalized dependency records for one ecosystem.
// Implementations may invoke external processes to enumerate the
// dependency graph; the rest of the tool only depends on this contract.
type Collector interface {
	// Collect returns every third-party dependency of the project, one
	// record per unique (name, version) pair within the ecosystem.
	// The returned records are sorted by name, version, then source.
	Collect(ctx context.Context) ([]model.DependencyRecord, error)

	// Name returns the collector's ecosystem name for logging.
	Name() string
}

// ParseError reports that an ecosystem's dependency metadata could not be
// read or parsed. It names the offending file or data source so the user
// knows which ecosystem's metadata to fix.
type ParseError struct {
	// Ecosystem is the collector that failed.
	Ecosystem model.Ecosystem

	// File is the metadata file or command output that was malformed.
	File string

	// Err is the underlying parse error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: malformed dependency metadata in %s: %v", e.Ecosystem, e.File, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As matching.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// CommandRunner executes an external command in the given directory and
// returns its standard output. It exists so tests can substitute canned
// package-manager output without having cargo or pnpm installed.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec. This is the production runner.
// On failure the command's stderr is folded into the error because
// package managers put the useful diagnostics there.
func ExecRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("running %s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("running %s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}
