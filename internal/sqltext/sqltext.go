// Package sqltext holds the low-level text rules shared by every renderer:
// how literals are quoted and how identifiers are cleaned before they are
// interpolated into a statement.
//
// The builder emits a single SQL string rather than a parameterized query,
// so these helpers are the only thing standing between caller data and the
// statement text. They are a lightweight defense against malformed values,
// not a replacement for bound parameters.
package sqltext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Quote renders v as a single-quoted SQL string literal.
// Embedded single quotes are doubled.
func Quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}

// QuoteAll quotes every value in vs.
func QuoteAll(vs []string) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = Quote(v)
	}
	return out
}

// SanitizeIdentifier strips double quotes and backslashes from a table name
// and normalizes it to NFC so visually identical names render identically.
func SanitizeIdentifier(name string) string {
	name = strings.ReplaceAll(name, `"`, "")
	name = strings.ReplaceAll(name, `\`, "")
	return norm.NFC.String(name)
}

// JoinNonEmpty joins the non-empty parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
