package errors

import (
	"strings"
	"unicode"
)

// maxBoxIDLength bounds box identifiers so they stay usable as SVG ids and
// cache key components.
const maxBoxIDLength = 128

// ValidateConstraintSize rejects negative constraint sizes.
// The axis name ("width" or "height") is used in the message.
func ValidateConstraintSize(axis string, size int) error {
	if size < 0 {
		return New(ErrCodeInvalidConstraint, "%s constraint cannot be negative: %d", axis, size)
	}
	return nil
}

// ValidateMargins rejects negative margins. Margins are given in
// left, top, right, bottom order.
func ValidateMargins(left, top, right, bottom int) error {
	sides := [...]struct {
		name  string
		value int
	}{
		{"left", left},
		{"top", top},
		{"right", right},
		{"bottom", bottom},
	}
	for _, s := range sides {
		if s.value < 0 {
			return New(ErrCodeInvalidMargin, "%s margin cannot be negative: %d", s.name, s.value)
		}
	}
	return nil
}

// ValidateBoxID validates a box identifier from an input document.
//
// Validation rules:
//   - ID cannot be empty
//   - Maximum length of 128 characters
//   - No whitespace or control characters
//   - No quotes or angle brackets (ids end up in SVG and DOT output)
func ValidateBoxID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDocument, "box id cannot be empty")
	}

	if len(id) > maxBoxIDLength {
		return New(ErrCodeInvalidDocument, "box id too long (max %d characters)", maxBoxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidDocument, "box id %q contains whitespace or control characters", id)
		}
	}

	if strings.ContainsAny(id, `"'<>&`) {
		return New(ErrCodeInvalidDocument, "box id %q contains reserved characters", id)
	}

	return nil
}
