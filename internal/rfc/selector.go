package rfc

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// selectorKind classifies a user-supplied selector once, so the three-branch
// dispatch below stays in one place.
type selectorKind int

const (
	selectorID selectorKind = iota
	selectorPath
	selectorSlug
)

func (r *Repository) classifySelector(selector string) (selectorKind, string) {
	if isNumeric(strings.TrimSpace(selector)) {
		return selectorID, ""
	}
	if path, ok := r.documentPath(selector); ok {
		return selectorPath, path
	}
	return selectorSlug, ""
}

func pathCandidates(selector, dir string) []string {
	return []string{
		selector,
		filepath.Join(dir, selector),
		filepath.Join(dir, selector+".md"),
	}
}

// documentPath returns the first existing file the selector names inside the
// RFC directory. Candidates outside the directory are skipped, not rejected:
// a slug selector shadowed by an unrelated file in the working directory must
// still fall through to slug matching.
func (r *Repository) documentPath(selector string) (string, bool) {
	for _, candidate := range pathCandidates(selector, r.Dir) {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() || !r.inside(candidate) {
			continue
		}
		return candidate, true
	}
	return "", false
}

// Resolve maps a selector to exactly one existing document path.
//
// A numeric selector is zero-padded and matched against identifier prefixes.
// A selector naming an existing file inside the RFC directory is used
// directly. Anything else is treated as a slug fragment: it matches documents
// whose slug equals or starts with the normalized selector.
func (r *Repository) Resolve(selector string) (string, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return "", &NotFoundError{Selector: selector, Dir: r.Dir}
	}

	entries, err := r.Scan()
	if err != nil {
		return "", err
	}

	kind, path := r.classifySelector(trimmed)
	switch kind {
	case selectorID:
		return r.resolveByID(trimmed, entries)
	case selectorPath:
		return path, nil
	default:
		return r.resolveBySlug(trimmed, entries)
	}
}

func (r *Repository) resolveByID(selector string, entries []Entry) (string, error) {
	id, err := strconv.Atoi(selector)
	if err != nil {
		return "", &NotFoundError{Selector: selector, Dir: r.Dir}
	}

	prefix := FormatID(id)
	var matches []Entry
	for _, e := range entries {
		if strings.HasPrefix(e.Name, prefix) {
			matches = append(matches, e)
		}
	}
	return r.single(selector, matches)
}

func (r *Repository) resolveBySlug(selector string, entries []Entry) (string, error) {
	normalized := Slugify(selector)
	if normalized == "" {
		return "", &NotFoundError{Selector: selector, Dir: r.Dir}
	}

	var matches []Entry
	for _, e := range entries {
		slug := e.Slug()
		if slug == normalized || strings.HasPrefix(slug, normalized) {
			matches = append(matches, e)
		}
	}
	return r.single(selector, matches)
}

func (r *Repository) single(selector string, matches []Entry) (string, error) {
	switch len(matches) {
	case 0:
		return "", &NotFoundError{Selector: selector, Dir: r.Dir}
	case 1:
		return matches[0].Path, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return "", &AmbiguousError{Selector: selector, Candidates: names}
	}
}

// inside reports whether path lies within the RFC directory.
func (r *Repository) inside(path string) bool {
	absDir, err := filepath.Abs(r.Dir)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return strings.HasPrefix(absPath, absDir+string(filepath.Separator))
}
