// Package rfc implements the RFC document engine: identifier allocation,
// frontmatter parsing and serialization, template rendering, and selector
// resolution over a directory of markdown files.
package rfc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors returned by the engine. Callers match with errors.Is.
var (
	// ErrInvalidTitle is returned when a title is empty after normalization
	// or is numeric-only (numeric values are reserved for RFC id selectors).
	ErrInvalidTitle = errors.New("invalid RFC title")

	// ErrMalformedFrontmatter is returned when a frontmatter block is not
	// well-formed TOML, is missing a required field, or has a field of the
	// wrong shape.
	ErrMalformedFrontmatter = errors.New("malformed RFC frontmatter")

	// ErrNonMonotonicRevision is returned when an appended revision would be
	// dated earlier than the most recent existing revision.
	ErrNonMonotonicRevision = errors.New("revision date precedes last revision")

	// ErrTemplate is returned when a template fails to parse or references a
	// placeholder with no corresponding context value.
	ErrTemplate = errors.New("template error")

	// ErrExists is returned when creating an RFC would collide with an
	// existing file or an existing title.
	ErrExists = errors.New("RFC already exists")
)

// NotFoundError is returned when a selector matches no existing RFC.
type NotFoundError struct {
	Selector string
	Dir      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no RFC matches selector %q in %s", e.Selector, e.Dir)
}

// AmbiguousError is returned when a selector matches more than one RFC.
// Candidates holds the matching file names so the caller can disambiguate.
type AmbiguousError struct {
	Selector   string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("selector %q matched multiple RFC files; use an exact path or RFC id: %s",
		e.Selector, strings.Join(e.Candidates, ", "))
}
