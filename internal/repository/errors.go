// Package repository implements the persistence layer over MySQL. Driver
// level integrity failures (duplicate keys, broken foreign keys) are
// translated into the shared taxonomy here so nothing above this package
// ever sees a raw storage error for a constraint violation.
package repository

import "strings"

// MySQL error numbers we care about: 1062 duplicate entry, 1452 foreign
// key constraint fails.
func isIntegrityErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "1062") || strings.Contains(msg, "1452")
}
