// Package main provides the entry point for the noticegen CLI.
//
// noticegen collects third-party dependency metadata from Cargo and pnpm,
// validates declared licenses against a project allow-list, and generates
// third-party-notice documents in JSON, Markdown, and HTML.
//
// Usage:
//
//	noticegen generate [project-dir]
//	noticegen compare [project-dir]
//
// See --help for all available options.
package main

// main is the entry point for noticegen.
func main() {
	Execute()
}
