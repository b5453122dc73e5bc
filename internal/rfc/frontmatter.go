package rfc

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Frontmatter is the typed metadata record at the top of every RFC file.
//
// Serialized field order is fixed by struct order regardless of how the
// record was built in memory. Optional fields carry omitempty and are left
// out of the serialized block entirely when unset.
type Frontmatter struct {
	RFC         string    `toml:"rfc"`
	Title       string    `toml:"title"`
	Authors     []string  `toml:"authors"`
	Created     time.Time `toml:"created"`
	LastUpdated time.Time `toml:"last_updated"`

	Agents        []string `toml:"agents,omitempty"`
	Discussion    string   `toml:"discussion,omitempty"`
	TrackingIssue string   `toml:"tracking_issue,omitempty"`
	Prerequisite  []int    `toml:"prerequisite,omitempty"`
	Supersedes    []int    `toml:"supersedes,omitempty"`
	SupersededBy  []int    `toml:"superseded_by,omitempty"`

	Revisions []Revision `toml:"revision"`
}

// Revision is one append-only history entry. Entries are never removed or
// reordered.
type Revision struct {
	Date   time.Time `toml:"date"`
	Change string    `toml:"change"`
}

// FieldPatch carries the metadata fields a revise call wants to overwrite.
// Nil (or empty-slice) fields are left untouched.
type FieldPatch struct {
	Title         *string
	Authors       []string
	Agents        []string
	Discussion    *string
	TrackingIssue *string
	Prerequisite  []int
	Supersedes    []int
	SupersededBy  []int
}

var requiredFields = []string{"rfc", "title", "authors", "created", "last_updated", "revision"}

// ParseFrontmatter decodes a raw TOML metadata block into a typed record.
func ParseFrontmatter(raw string) (*Frontmatter, error) {
	var fm Frontmatter
	md, err := toml.Decode(raw, &fm)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}

	for _, field := range requiredFields {
		if !md.IsDefined(field) {
			return nil, fmt.Errorf("%w: missing required field `%s`", ErrMalformedFrontmatter, field)
		}
	}
	if len(fm.Revisions) == 0 {
		return nil, fmt.Errorf("%w: revision list is empty", ErrMalformedFrontmatter)
	}
	for i, rev := range fm.Revisions {
		if rev.Date.IsZero() {
			return nil, fmt.Errorf("%w: revision entry %d is missing `date`", ErrMalformedFrontmatter, i+1)
		}
		if strings.TrimSpace(rev.Change) == "" {
			return nil, fmt.Errorf("%w: revision entry %d is missing `change`", ErrMalformedFrontmatter, i+1)
		}
	}

	return &fm, nil
}

// Serialize renders the record back to its canonical TOML form.
func (f *Frontmatter) Serialize() (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(f); err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

// AppendRevision pushes a {date, change} entry and moves last_updated
// forward. A timestamp earlier than the most recent revision is a hard
// failure so that history stays monotonic.
func (f *Frontmatter) AppendRevision(change string, now time.Time) error {
	if len(f.Revisions) > 0 {
		last := f.Revisions[len(f.Revisions)-1].Date
		if now.Before(last) {
			return fmt.Errorf("%w: %s is earlier than %s",
				ErrNonMonotonicRevision, Timestamp(now), Timestamp(last))
		}
	}

	f.Revisions = append(f.Revisions, Revision{Date: now, Change: change})
	f.LastUpdated = now
	return nil
}

// SetFields overwrites exactly the fields the patch supplies.
func (f *Frontmatter) SetFields(patch FieldPatch) {
	if patch.Title != nil {
		f.Title = *patch.Title
	}
	if patch.Authors != nil {
		f.Authors = patch.Authors
	}
	if patch.Agents != nil {
		f.Agents = patch.Agents
	}
	if patch.Discussion != nil {
		f.Discussion = *patch.Discussion
	}
	if patch.TrackingIssue != nil {
		f.TrackingIssue = *patch.TrackingIssue
	}
	if patch.Prerequisite != nil {
		f.Prerequisite = patch.Prerequisite
	}
	if patch.Supersedes != nil {
		f.Supersedes = patch.Supersedes
	}
	if patch.SupersededBy != nil {
		f.SupersededBy = patch.SupersededBy
	}
}

// TitleInput gathers the title-bearing inputs a caller may supply.
// Exactly one wins: Explicit > Parts (joined with underscores) > Positional.
type TitleInput struct {
	Explicit   string
	Parts      []string
	Positional string
}

// Resolve applies the title precedence rules. Returns "" when no title was
// supplied at all.
func (t TitleInput) Resolve() string {
	if t.Explicit != "" {
		return t.Explicit
	}
	if len(t.Parts) > 0 {
		return strings.Join(t.Parts, "_")
	}
	return t.Positional
}

// Timestamp formats a time in the canonical frontmatter form: ISO-8601 UTC,
// second precision.
func Timestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
