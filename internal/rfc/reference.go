package rfc

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Reference is one user-supplied value for the prerequisite, supersedes, or
// superseded_by fields. Numeric inputs are direct RFC ids; anything else is a
// title that resolves against the documents on disk.
type Reference struct {
	ID    int
	Title string
}

// ParseReference classifies a raw reference value.
func ParseReference(raw string) (Reference, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Reference{}, fmt.Errorf("RFC reference cannot be empty")
	}
	if isNumeric(trimmed) {
		id, err := strconv.Atoi(trimmed)
		if err != nil {
			return Reference{}, fmt.Errorf("invalid RFC id %q", trimmed)
		}
		return Reference{ID: id}, nil
	}
	return Reference{Title: trimmed}, nil
}

// IndexEntry is one document in the title index, with its parsed metadata.
type IndexEntry struct {
	Entry
	Title       string
	LastUpdated time.Time

	titleFolded string
	titleSlug   string
}

// Index scans the directory and parses every document's frontmatter. A file
// that matches the naming pattern but fails to parse aborts the index with
// the offending path in the error.
func (r *Repository) Index() ([]IndexEntry, error) {
	entries, err := r.Scan()
	if err != nil {
		return nil, err
	}

	index := make([]IndexEntry, 0, len(entries))
	for _, e := range entries {
		content, err := os.ReadFile(e.Path)
		if err != nil {
			return nil, fmt.Errorf("index RFC file %s: %w", e.Path, err)
		}
		doc, err := ParseDocument(string(content))
		if err != nil {
			return nil, fmt.Errorf("index RFC file %s: %w", e.Path, err)
		}
		title := doc.Frontmatter.Title
		index = append(index, IndexEntry{
			Entry:       e,
			Title:       title,
			LastUpdated: doc.Frontmatter.LastUpdated,
			titleFolded: strings.ToLower(strings.TrimSpace(title)),
			titleSlug:   Slugify(title),
		})
	}
	return index, nil
}

// ResolveReferences normalizes mixed id/title references into a deduped id
// list. The title index is built lazily, only when a title reference is
// present.
func (r *Repository) ResolveReferences(refs []Reference) ([]int, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	var index []IndexEntry
	for _, ref := range refs {
		if ref.Title != "" {
			var err error
			if index, err = r.Index(); err != nil {
				return nil, err
			}
			break
		}
	}

	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		if ref.Title == "" {
			ids = append(ids, ref.ID)
			continue
		}
		id, err := resolveTitleReference(ref.Title, index, r.Dir)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return dedupeInts(ids), nil
}

// resolveTitleReference matches a title against the index by exact title,
// then case-insensitive title, then slug.
func resolveTitleReference(title string, index []IndexEntry, dir string) (int, error) {
	keys := []func(IndexEntry) string{
		func(e IndexEntry) string { return e.Title },
		func(e IndexEntry) string { return e.titleFolded },
		func(e IndexEntry) string { return e.titleSlug },
	}
	wants := []string{
		title,
		strings.ToLower(strings.TrimSpace(title)),
		Slugify(title),
	}

	for pass, key := range keys {
		var matches []IndexEntry
		for _, e := range index {
			if key(e) == wants[pass] {
				matches = append(matches, e)
			}
		}
		if len(matches) == 1 {
			return matches[0].ID, nil
		}
		if len(matches) > 1 {
			return 0, &AmbiguousError{Selector: title, Candidates: entryNames(matches)}
		}
	}

	return 0, &NotFoundError{Selector: title, Dir: dir}
}

// EnsureUniqueTitle rejects a new title that case-insensitively or by slug
// collides with an existing document.
func (r *Repository) EnsureUniqueTitle(title string) error {
	index, err := r.Index()
	if err != nil {
		return err
	}

	folded := strings.ToLower(strings.TrimSpace(title))
	slug := Slugify(title)
	for _, e := range index {
		if e.titleFolded == folded || (slug != "" && e.titleSlug == slug) {
			return fmt.Errorf("%w: title %q collides with %s (%s)",
				ErrExists, strings.TrimSpace(title), FormatID(e.ID), e.Title)
		}
	}
	return nil
}

func entryNames(entries []IndexEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func dedupeInts(values []int) []int {
	seen := make(map[int]struct{}, len(values))
	out := values[:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
