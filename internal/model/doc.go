// Package model defines the core data structures for noticegen.
// It contains dependency records collected from package managers,
// the aggregate notice report produced after validation, and the
// violation entries produced when validation fails.
package model
