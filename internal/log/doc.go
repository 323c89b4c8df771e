// Package log provides the logger construction used across noticegen,
// built on the standard slog package. Verbose mode lowers the level to
// debug; otherwise only warnings and errors reach the user, keeping the
// tool quiet in CI pipelines where its output is parsed.
package log
