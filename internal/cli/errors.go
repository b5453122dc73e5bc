package cli

import (
	"errors"

	"github.com/agxtool/agx/internal/rfc"
)

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// RFC engine errors
	ErrInvalidTitle         = "INVALID_TITLE"
	ErrMalformedFrontmatter = "MALFORMED_FRONTMATTER"
	ErrNonMonotonicRevision = "NON_MONOTONIC_REVISION"
	ErrTemplateError        = "TEMPLATE_ERROR"
	ErrRFCNotFound          = "RFC_NOT_FOUND"
	ErrRFCAmbiguous         = "RFC_AMBIGUOUS"
	ErrRFCExists            = "RFC_EXISTS"

	// Skill errors
	ErrSkillInvalid  = "SKILL_INVALID"
	ErrSkillNotFound = "SKILL_NOT_FOUND"
	ErrSkillExists   = "SKILL_EXISTS"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrNotFound  = "NOT_FOUND"
	ErrFileError = "FILE_ERROR"
)

// engineErrCode maps an engine error to its stable CLI code.
func engineErrCode(err error) string {
	var notFound *rfc.NotFoundError
	var ambiguous *rfc.AmbiguousError

	switch {
	case errors.Is(err, rfc.ErrInvalidTitle):
		return ErrInvalidTitle
	case errors.Is(err, rfc.ErrMalformedFrontmatter):
		return ErrMalformedFrontmatter
	case errors.Is(err, rfc.ErrNonMonotonicRevision):
		return ErrNonMonotonicRevision
	case errors.Is(err, rfc.ErrTemplate):
		return ErrTemplateError
	case errors.Is(err, rfc.ErrExists):
		return ErrRFCExists
	case errors.As(err, &notFound):
		return ErrRFCNotFound
	case errors.As(err, &ambiguous):
		return ErrRFCAmbiguous
	default:
		return ErrFileError
	}
}
