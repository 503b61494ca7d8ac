package db

import "strings"

// IsUniqueViolation reports whether the provided error is a unique constraint
// violation. Hints narrow the check to one constraint: the postgres driver
// names the violated index while the sqlite driver used in tests reports the
// offending column list, so callers pass both forms and either match counts.
// With no hints any unique violation matches.
func IsUniqueViolation(err error, hints ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key value") &&
		!strings.Contains(msg, "UNIQUE constraint failed") {
		return false
	}
	if len(hints) == 0 {
		return true
	}
	for _, hint := range hints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
