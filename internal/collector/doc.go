// Package collector gathers third-party dependency metadata from package
// managers and normalizes it into model.DependencyRecord values.
//
// Two collectors are provided: Cargo (Rust, via `cargo metadata`) and
// Pnpm (JavaScript, via `pnpm list --json` plus each dependency's
// package.json). Both implement the Collector interface, keeping the
// ecosystem-specific parsing fully isolated from the validator.
//
// Collectors are fail-fast: a malformed metadata source or a failing
// package-manager invocation aborts the whole run with a ParseError or a
// wrapped exec error. There are no retries and no partial results.
package collector
