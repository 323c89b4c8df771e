// Package license splits SPDX-style license expressions into individual
// license identifiers.
//
// Package managers declare licenses as expressions such as
// "MIT OR Apache-2.0" or the legacy "MIT/Apache-2.0" form. The allow-list
// check operates on individual identifiers, so this package flattens an
// expression into the set of identifiers it mentions. It deliberately does
// not evaluate the boolean structure of the expression: the validator
// requires every mentioned identifier to be allowed, which is the
// conservative reading for compliance purposes.
package license
