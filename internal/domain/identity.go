package domain

import "strings"

// NormalizeID reduces an identifier to its bare comparable form. Records
// imported from the legacy store carry path-like identifiers ("users/5");
// the final path segment is the actual id. Normalization is applied at every
// comparison site and nowhere else: stored and displayed identifiers keep
// their original form.
//
// NormalizeID is idempotent.
func NormalizeID(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		return id[i+1:]
	}
	return id
}
