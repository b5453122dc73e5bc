package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Issue is one validation finding for a workspace skill.
type Issue struct {
	Skill   string `json:"skill"`
	Message string `json:"message"`
}

// Validate checks one workspace skill directory: frontmatter shape, name
// agreement with the directory, and a level-1 heading in the body.
func Validate(root, name string) []Issue {
	skillDir := filepath.Join(root, filepath.FromSlash(SkillsRoot), name)
	var issues []Issue

	data, err := os.ReadFile(filepath.Join(skillDir, "SKILL.md"))
	if err != nil {
		return append(issues, Issue{Skill: name, Message: fmt.Sprintf("missing SKILL.md: %v", err)})
	}

	meta, body, err := ParseSkillFile(string(data))
	if err != nil {
		return append(issues, Issue{Skill: name, Message: err.Error()})
	}
	if meta.Name != name {
		issues = append(issues, Issue{
			Skill:   name,
			Message: fmt.Sprintf("frontmatter name %q does not match directory %q", meta.Name, name),
		})
	}
	if !hasTopLevelHeading(body) {
		issues = append(issues, Issue{Skill: name, Message: "body has no top-level `#` heading"})
	}
	return issues
}

// ValidateAll validates every skill directory under the workspace root.
func ValidateAll(root string) ([]Issue, error) {
	dir := filepath.Join(root, filepath.FromSlash(SkillsRoot))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read skills directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var issues []Issue
	for _, name := range names {
		issues = append(issues, Validate(root, name)...)
	}
	return issues, nil
}

func hasTopLevelHeading(body string) bool {
	source := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}
