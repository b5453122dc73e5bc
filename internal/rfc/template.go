package rfc

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/default.md
var defaultTemplate string

// TemplateContext is the value set a document skeleton is expanded against.
// Zero-valued optional fields make their conditional sections render nothing.
type TemplateContext struct {
	RFC           string
	Title         string
	Authors       []string
	Agents        []string
	Discussion    string
	TrackingIssue string
	Prerequisite  []int
	Supersedes    []int
	SupersededBy  []int

	// Timestamp is the canonical ISO-8601 UTC creation time, used for
	// created, last_updated, and the initial revision date.
	Timestamp string

	// Change is the initial revision's change description.
	Change string
}

// DefaultTemplate returns the skeleton embedded in the binary.
func DefaultTemplate() string {
	return defaultTemplate
}

// LoadTemplate returns the workspace skeleton at <dir>/0000-template.md when
// it exists, otherwise the embedded default. Both support the same
// placeholder set.
func LoadTemplate(dir string) (string, error) {
	path := filepath.Join(dir, TemplateFileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultTemplate, nil
	}
	if err != nil {
		return "", fmt.Errorf("read template file %s: %w", path, err)
	}
	return string(data), nil
}

// Render expands a document skeleton against the context. A placeholder with
// no corresponding context value fails with ErrTemplate rather than rendering
// partial output.
func Render(skeleton string, ctx TemplateContext) (string, error) {
	tmpl, err := template.New("rfc").
		Funcs(template.FuncMap{"tomlString": tomlString}).
		Parse(skeleton)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.String(), nil
}

// tomlString quotes a value as a TOML basic string, matching the escaping the
// frontmatter serializer produces so created and revised files stay
// byte-consistent.
func tomlString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
