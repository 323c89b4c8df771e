package license

import (
	"slices"
	"strings"
)

// Split flattens an SPDX-style license expression into a sorted,
// deduplicated list of license identifiers.
//
// Accepted syntax, matching what crates.io and npm metadata contain in
// practice:
//   - "OR" and "AND" operators, case-insensitive ("MIT OR Apache-2.0")
//   - legacy slash separators ("MIT/Apache-2.0")
//   - parentheses ("(MIT OR CC0-1.0)")
//   - "WITH" exceptions, kept attached to their identifier
//     ("Apache-2.0 WITH LLVM-exception")
//
// An empty or all-whitespace expression yields an empty list, which the
// validator treats as "no license declared".
func Split(expression string) []string {
	replacer := strings.NewReplacer("(", " ", ")", " ", "/", " ")
	fields := strings.Fields(replacer.Replace(expression))

	var ids []string
	for i := 0; i < len(fields); i++ {
		token := fields[i]
		if isOperator(token) {
			continue
		}

		// Reattach "WITH <exception>" to the preceding identifier so
		// "Apache-2.0 WITH LLVM-exception" stays one identifier.
		if i+2 < len(fields) && strings.EqualFold(fields[i+1], "WITH") {
			token = token + " WITH " + fields[i+2]
			i += 2
		}
		ids = append(ids, token)
	}

	slices.Sort(ids)
	return slices.Compact(ids)
}

// isOperator reports whether the token is an expression operator rather
// than a license identifier.
func isOperator(token string) bool {
	return strings.EqualFold(token, "OR") ||
		strings.EqualFold(token, "AND") ||
		strings.EqualFold(token, "WITH")
}
