package rfc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"
)

// Change descriptions used when the caller doesn't supply one.
const (
	InitialChange = "Initial draft"
	RevisedChange = "Revised"
)

// Metadata carries the non-title fields a create or revise call supplies.
// Pointer and slice fields distinguish "not supplied" from "set to empty".
type Metadata struct {
	Authors       []string
	Agents        []string
	Discussion    *string
	TrackingIssue *string
	Prerequisite  []Reference
	Supersedes    []Reference
	SupersededBy  []Reference

	// Change overrides the default revision change description.
	Change string
}

// Service orchestrates the engine: it is the single entry point the CLI layer
// uses for document lifecycle operations.
type Service struct {
	Repo *Repository

	// Now is the clock; tests inject a fixed one.
	Now func() time.Time
}

// NewService builds a service over the given RFC directory.
func NewService(dir string) *Service {
	return &Service{
		Repo: &Repository{Dir: dir},
		Now:  time.Now,
	}
}

func (s *Service) now() time.Time {
	return s.Now().UTC().Truncate(time.Second)
}

// Init creates the RFC directory and seeds the reserved template file from
// the embedded default when it is missing.
func (s *Service) Init() (string, error) {
	if err := os.MkdirAll(s.Repo.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create RFC directory %s: %w", s.Repo.Dir, err)
	}

	path := filepath.Join(s.Repo.Dir, TemplateFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := writeExclusive(path, DefaultTemplate()); err != nil && !errors.Is(err, ErrExists) {
		return "", err
	}
	return path, nil
}

// Create allocates the next identifier, renders the document from the
// resolved template, and writes it with exclusive-create semantics so a
// racing invocation surfaces ErrExists instead of silently overwriting.
func (s *Service) Create(title TitleInput, meta Metadata) (string, error) {
	resolved := title.Resolve()
	if resolved == "" {
		return "", fmt.Errorf("%w: no title supplied", ErrInvalidTitle)
	}

	slug, err := DeriveSlug(resolved)
	if err != nil {
		return "", err
	}
	if err := s.Repo.EnsureUniqueTitle(resolved); err != nil {
		return "", err
	}

	authors := dedupeStrings(meta.Authors)
	if len(authors) == 0 {
		return "", fmt.Errorf("at least one author is required")
	}

	prerequisite, supersedes, supersededBy, err := s.resolveReferenceFields(meta)
	if err != nil {
		return "", err
	}

	id, err := s.Repo.NextID()
	if err != nil {
		return "", err
	}

	change := meta.Change
	if change == "" {
		change = InitialChange
	}

	ctx := TemplateContext{
		RFC:           FormatID(id),
		Title:         strings.TrimSpace(resolved),
		Authors:       authors,
		Agents:        dedupeStrings(meta.Agents),
		Discussion:    stringValue(meta.Discussion),
		TrackingIssue: stringValue(meta.TrackingIssue),
		Prerequisite:  prerequisite,
		Supersedes:    supersedes,
		SupersededBy:  supersededBy,
		Timestamp:     Timestamp(s.now()),
		Change:        change,
	}

	skeleton, err := LoadTemplate(s.Repo.Dir)
	if err != nil {
		return "", err
	}
	rendered, err := Render(skeleton, ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.Repo.Dir, FileName(id, slug))
	if err := writeExclusive(path, rendered); err != nil {
		return "", err
	}
	return path, nil
}

// Revise resolves the selector, applies the supplied field overrides, appends
// exactly one revision entry, resynchronizes the body heading, and atomically
// overwrites the file.
func (s *Service) Revise(selector string, title TitleInput, meta Metadata) (string, error) {
	path, err := s.Repo.Resolve(selector)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read RFC file %s: %w", path, err)
	}
	doc, err := ParseDocument(string(content))
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}

	patch, err := s.buildPatch(title, meta)
	if err != nil {
		return "", err
	}
	doc.Frontmatter.SetFields(patch)

	change := meta.Change
	if change == "" {
		change = RevisedChange
	}
	if err := doc.Frontmatter.AppendRevision(change, s.now()); err != nil {
		return "", err
	}

	doc.Body = SyncHeading(doc.Body, doc.Frontmatter.RFC, doc.Frontmatter.Title)

	encoded, err := doc.Encode()
	if err != nil {
		return "", err
	}
	if err := atomic.WriteFile(path, strings.NewReader(encoded)); err != nil {
		return "", fmt.Errorf("update RFC file %s: %w", path, err)
	}
	return path, nil
}

func (s *Service) buildPatch(title TitleInput, meta Metadata) (FieldPatch, error) {
	var patch FieldPatch

	// The positional argument is the selector on revise, never a title.
	title.Positional = ""
	if resolved := title.Resolve(); resolved != "" {
		trimmed := strings.TrimSpace(resolved)
		patch.Title = &trimmed
	}

	if meta.Authors != nil {
		patch.Authors = dedupeStrings(meta.Authors)
	}
	if meta.Agents != nil {
		patch.Agents = dedupeStrings(meta.Agents)
	}
	patch.Discussion = meta.Discussion
	patch.TrackingIssue = meta.TrackingIssue

	prerequisite, supersedes, supersededBy, err := s.resolveReferenceFields(meta)
	if err != nil {
		return FieldPatch{}, err
	}
	if meta.Prerequisite != nil {
		patch.Prerequisite = prerequisite
	}
	if meta.Supersedes != nil {
		patch.Supersedes = supersedes
	}
	if meta.SupersededBy != nil {
		patch.SupersededBy = supersededBy
	}
	return patch, nil
}

func (s *Service) resolveReferenceFields(meta Metadata) (prerequisite, supersedes, supersededBy []int, err error) {
	if prerequisite, err = s.Repo.ResolveReferences(meta.Prerequisite); err != nil {
		return nil, nil, nil, err
	}
	if supersedes, err = s.Repo.ResolveReferences(meta.Supersedes); err != nil {
		return nil, nil, nil, err
	}
	if supersededBy, err = s.Repo.ResolveReferences(meta.SupersededBy); err != nil {
		return nil, nil, nil, err
	}
	return prerequisite, supersedes, supersededBy, nil
}

// writeExclusive creates the file, failing with ErrExists when the path is
// already taken. Rendering has fully succeeded before this runs, so a failed
// write leaves the directory unchanged.
func writeExclusive(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("create RFC file %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write RFC file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close RFC file %s: %w", path, err)
	}
	return nil
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
