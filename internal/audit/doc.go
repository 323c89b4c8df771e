// Package audit implements the license validation and aggregation core.
//
// Validate merges the collectors' dependency records, filters ignored
// packages, checks every remaining license against the allow-list, and
// produces either a complete notice report or the full list of
// violations, never both. The function is pure: identical inputs always
// yield identical output regardless of input order.
package audit
