package rfc

import (
	"errors"
	"os"
	"testing"
)

func TestParseReference(t *testing.T) {
	tests := []struct {
		in      string
		want    Reference
		wantErr bool
	}{
		{"12", Reference{ID: 12}, false},
		{" 0042 ", Reference{ID: 42}, false},
		{"Add parser", Reference{Title: "Add parser"}, false},
		{"  spaced title  ", Reference{Title: "spaced title"}, false},
		{"", Reference{}, true},
		{"   ", Reference{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseReference(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseReference(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReference(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseReference(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolveReferences(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, 1, "add-parser", "Add parser")
	writeTestDoc(t, dir, 2, "fix-bug", "Fix bug")

	repo := &Repository{Dir: dir}

	tests := []struct {
		name string
		refs []Reference
		want []int
	}{
		{"nil input", nil, nil},
		{"direct ids pass through", []Reference{{ID: 7}, {ID: 9}}, []int{7, 9}},
		{"duplicate ids collapse", []Reference{{ID: 7}, {ID: 7}}, []int{7}},
		{"exact title", []Reference{{Title: "Add parser"}}, []int{1}},
		{"case-insensitive title", []Reference{{Title: "ADD PARSER"}}, []int{1}},
		{"slug form of title", []Reference{{Title: "fix-bug"}}, []int{2}},
		{"mixed ids and titles", []Reference{{ID: 2}, {Title: "Add parser"}}, []int{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.ResolveReferences(tt.refs)
			if err != nil {
				t.Fatalf("ResolveReferences: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ResolveReferences = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("ResolveReferences = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestResolveReferencesUnknownTitle(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, 1, "add-parser", "Add parser")

	_, err := (&Repository{Dir: dir}).ResolveReferences([]Reference{{Title: "No such RFC"}})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestResolveReferencesAmbiguousTitle(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, 1, "api-design", "API Design")
	writeTestDoc(t, dir, 2, "api-design-v2", "api design")

	// Neither document matches exactly, and both match case-insensitively.
	_, err := (&Repository{Dir: dir}).ResolveReferences([]Reference{{Title: "Api Design"}})
	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("error = %v, want AmbiguousError", err)
	}
}

func TestResolveReferencesExactTitleWinsOverFolded(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, 1, "api-design", "API Design")
	writeTestDoc(t, dir, 2, "api-design-v2", "api design")

	got, err := (&Repository{Dir: dir}).ResolveReferences([]Reference{{Title: "API Design"}})
	if err != nil {
		t.Fatalf("ResolveReferences: %v", err)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("ResolveReferences = %v, want [1]", got)
	}
}

func TestEnsureUniqueTitle(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, 1, "add-parser", "Add parser")

	repo := &Repository{Dir: dir}

	tests := []struct {
		name    string
		title   string
		wantErr bool
	}{
		{"fresh title", "Fix bug", false},
		{"identical title", "Add parser", true},
		{"case-folded collision", "ADD PARSER", true},
		{"slug collision", "Add  Parser!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.EnsureUniqueTitle(tt.title)
			if tt.wantErr {
				if !errors.Is(err, ErrExists) {
					t.Fatalf("error = %v, want ErrExists", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("EnsureUniqueTitle(%q): %v", tt.title, err)
			}
		})
	}
}

func TestIndexFailsOnMalformedDocument(t *testing.T) {
	dir := t.TempDir()
	writeTestDoc(t, dir, 1, "add-parser", "Add parser")
	path := writeTestDoc(t, dir, 2, "broken", "Broken")
	if err := os.WriteFile(path, []byte("no frontmatter here\n"), 0o644); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	_, err := (&Repository{Dir: dir}).Index()
	if err == nil {
		t.Fatal("expected index error for malformed document")
	}
	if !errors.Is(err, ErrMalformedFrontmatter) {
		t.Fatalf("error = %v, want ErrMalformedFrontmatter", err)
	}
}
