// Package database provides SQLite-based storage of past noticegen runs.
// Each successful run's validated dependency entries are recorded so the
// compare command can show how a project's third-party surface changed
// between releases. Failed runs are never stored.
package database
