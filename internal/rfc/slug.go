package rfc

import (
	"fmt"
	"strings"

	goslug "github.com/gosimple/slug"
)

// Slugify converts a string to the filesystem-safe form used in RFC file
// names: lowercase, non-alphanumeric runs collapsed to a single hyphen,
// leading/trailing hyphens trimmed. It is lenient and may return an empty
// string; use DeriveSlug when creating documents.
func Slugify(s string) string {
	return goslug.Make(s)
}

// DeriveSlug derives the file-name slug for a new RFC title.
//
// Unlike Slugify it enforces the creation-time contract: the result must be
// non-empty, and numeric-only titles are rejected because a bare number is
// indistinguishable from an RFC id selector.
func DeriveSlug(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", fmt.Errorf("%w: title is empty", ErrInvalidTitle)
	}

	derived := Slugify(trimmed)
	if derived == "" {
		return "", fmt.Errorf("%w: title %q has no usable characters", ErrInvalidTitle, trimmed)
	}
	if isNumeric(derived) {
		return "", fmt.Errorf("%w: numeric-only title %q is reserved for RFC id selectors", ErrInvalidTitle, trimmed)
	}

	return derived, nil
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
