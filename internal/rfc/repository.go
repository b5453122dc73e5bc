package rfc

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	// IDWidth is the zero-padded width of RFC identifiers in file names.
	IDWidth = 4

	// StartID is the identifier assigned to the first document in an empty
	// directory. 0000 is reserved for the template file.
	StartID = 1

	// TemplateFileName is the reserved template document. It is excluded
	// from identifier numbering and from selector matching.
	TemplateFileName = "0000-template.md"
)

// Entry is one document discovered in the RFC directory.
type Entry struct {
	ID   int
	Name string
	Path string
}

// Slug returns the slug portion of the entry's file name.
func (e Entry) Slug() string {
	name := strings.TrimSuffix(e.Name, ".md")
	if len(name) <= IDWidth+1 {
		return ""
	}
	return name[IDWidth+1:]
}

// Repository enumerates the RFC documents in a single directory. It holds no
// state beyond the directory path: every operation re-scans the files on
// disk.
type Repository struct {
	Dir string
}

// Scan lists the documents in the directory, ordered by identifier. Files
// that don't match the <NNNN>-<slug>.md naming pattern are ignored, as is the
// reserved template file.
func (r *Repository) Scan() ([]Entry, error) {
	dirEntries, err := os.ReadDir(r.Dir)
	if err != nil {
		return nil, fmt.Errorf("read RFC directory %s: %w", r.Dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if name == TemplateFileName {
			continue
		}
		id, ok := parseIDPrefix(name)
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ID:   id,
			Name: name,
			Path: filepath.Join(r.Dir, name),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ID != entries[j].ID {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// NextID computes the next free identifier: max(existing) + 1, or StartID
// when the directory holds no documents.
func (r *Repository) NextID() (int, error) {
	entries, err := r.Scan()
	if err != nil {
		return 0, err
	}

	next := StartID
	for _, e := range entries {
		if e.ID >= next {
			next = e.ID + 1
		}
	}
	return next, nil
}

// FormatID renders an identifier zero-padded to the canonical width.
func FormatID(id int) string {
	return fmt.Sprintf("%0*d", IDWidth, id)
}

// FileName builds the canonical document file name for an identifier and
// slug.
func FileName(id int, slug string) string {
	return fmt.Sprintf("%s-%s.md", FormatID(id), slug)
}

func parseIDPrefix(name string) (int, bool) {
	if !strings.HasSuffix(name, ".md") || len(name) < IDWidth {
		return 0, false
	}
	prefix := name[:IDWidth]
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return id, true
}
