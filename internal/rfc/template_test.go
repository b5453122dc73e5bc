package rfc

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func minimalContext() TemplateContext {
	return TemplateContext{
		RFC:       "0001",
		Title:     "Add parser support",
		Authors:   []string{"Freya"},
		Timestamp: "2026-01-10T09:00:00Z",
		Change:    "Initial draft",
	}
}

func TestRenderDefaultTemplateMinimal(t *testing.T) {
	out, err := Render(DefaultTemplate(), minimalContext())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantFrontmatter := `+++
rfc = "0001"
title = "Add parser support"
authors = ["Freya"]
created = 2026-01-10T09:00:00Z
last_updated = 2026-01-10T09:00:00Z

[[revision]]
date = 2026-01-10T09:00:00Z
change = "Initial draft"
+++

# RFC 0001: Add parser support
`
	if !strings.HasPrefix(out, wantFrontmatter) {
		t.Fatalf("rendered output prefix mismatch:\ngot:\n%s\nwant prefix:\n%s", out, wantFrontmatter)
	}
	for _, section := range []string{"## Summary", "## Motivation", "## Design", "## Drawbacks", "## Alternatives"} {
		if !strings.Contains(out, section) {
			t.Errorf("missing section %q", section)
		}
	}
}

func TestRenderDefaultTemplateAllFields(t *testing.T) {
	ctx := minimalContext()
	ctx.Authors = []string{"Freya", "Bob"}
	ctx.Agents = []string{"codegen", "review"}
	ctx.Discussion = "https://example.com/d/17"
	ctx.TrackingIssue = "PROJ-42"
	ctx.Prerequisite = []int{2}
	ctx.Supersedes = []int{3, 4}
	ctx.SupersededBy = []int{9}

	out, err := Render(DefaultTemplate(), ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wantLines := []string{
		`authors = ["Freya", "Bob"]`,
		`agents = ["codegen", "review"]`,
		`discussion = "https://example.com/d/17"`,
		`tracking_issue = "PROJ-42"`,
		`prerequisite = [2]`,
		`supersedes = [3, 4]`,
		`superseded_by = [9]`,
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("missing line %q in:\n%s", line, out)
		}
	}
	if !strings.Contains(out, "superseded_by = [9]\n\n[[revision]]") {
		t.Errorf("expected exactly one blank line before the revision table:\n%s", out)
	}
}

// A freshly rendered document re-encodes to the same bytes, so files written
// at create time and files rewritten at revise time share one canonical form.
func TestRenderedDocumentIsCanonical(t *testing.T) {
	ctx := minimalContext()
	ctx.Authors = []string{"Freya", "Bob"}
	ctx.Discussion = "https://example.com/d/17"
	ctx.Prerequisite = []int{2, 7}

	rendered, err := Render(DefaultTemplate(), ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	doc, err := ParseDocument(rendered)
	if err != nil {
		t.Fatalf("ParseDocument(rendered): %v", err)
	}
	encoded, err := doc.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if encoded != rendered {
		t.Fatalf("rendered and re-encoded output differ:\nrendered:\n%s\nencoded:\n%s", rendered, encoded)
	}
}

func TestRenderUnknownPlaceholder(t *testing.T) {
	_, err := Render("value = {{.Bogus}}\n", minimalContext())
	if !errors.Is(err, ErrTemplate) {
		t.Fatalf("error = %v, want ErrTemplate", err)
	}
}

func TestRenderInvalidSyntax(t *testing.T) {
	_, err := Render("{{if}}\n", minimalContext())
	if !errors.Is(err, ErrTemplate) {
		t.Fatalf("error = %v, want ErrTemplate", err)
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()

	// No workspace template: embedded default.
	got, err := LoadTemplate(dir)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if got != DefaultTemplate() {
		t.Fatalf("expected embedded default template")
	}

	// Workspace template wins.
	custom := "+++\nrfc = \"{{.RFC}}\"\n+++\n\n# {{.Title}}\n"
	if err := os.WriteFile(filepath.Join(dir, TemplateFileName), []byte(custom), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	got, err = LoadTemplate(dir)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if got != custom {
		t.Fatalf("LoadTemplate = %q, want workspace template", got)
	}
}

func TestTomlString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", `"plain"`},
		{`with "quotes"`, `"with \"quotes\""`},
		{`back\slash`, `"back\\slash"`},
		{"tab\there", `"tab\there"`},
		{"line\nbreak", `"line\nbreak"`},
		{"", `""`},
	}

	for _, tt := range tests {
		if got := tomlString(tt.in); got != tt.want {
			t.Errorf("tomlString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
