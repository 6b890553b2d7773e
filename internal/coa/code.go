package coa

import (
	"fmt"
	"strings"
)

// Account codes are dot-segmented, e.g. "1.1.1.001". The segment count is the
// account's level and dropping the last segment yields the parent code.

// LevelOf returns the hierarchy depth encoded in the account code.
func LevelOf(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, ".") + 1
}

// ParentCode returns the code with its last segment removed, or "" for a root.
func ParentCode(code string) string {
	idx := strings.LastIndex(code, ".")
	if idx < 0 {
		return ""
	}
	return code[:idx]
}

// ValidateCode rejects empty codes and empty segments ("1..2", trailing dots).
func ValidateCode(code string) error {
	if code == "" {
		return fmt.Errorf("coa: account code required")
	}
	for _, segment := range strings.Split(code, ".") {
		if segment == "" {
			return fmt.Errorf("coa: malformed account code %q", code)
		}
	}
	return nil
}
