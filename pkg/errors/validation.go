package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds tooltip names and element IDs read from fixtures.
const maxNameLength = 128

// ValidateName checks a tooltip name or element ID.
// Names must be non-empty, at most 128 characters, and free of whitespace,
// control characters and quotes (they end up inside attribute selectors).
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s cannot be empty", kind)
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s too long (max %d characters)", kind, maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "%s %q contains whitespace or control characters", kind, name)
		}
	}
	if strings.ContainsAny(name, `"'`) {
		return New(ErrCodeInvalidInput, "%s %q contains quotes", kind, name)
	}
	return nil
}

// ValidateNonNegative rejects negative pixel values.
func ValidateNonNegative(field string, v int) error {
	if v < 0 {
		return New(ErrCodeInvalidConfig, "%s must be >= 0, got %d", field, v)
	}
	return nil
}
