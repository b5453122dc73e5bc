// Package skills manages workspace and built-in agent skills: small
// directories holding a SKILL.md with restricted YAML frontmatter plus
// optional agent metadata files.
package skills

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SkillsRoot is the workspace skills directory, relative to the project root.
const SkillsRoot = ".agents/skills"

const yamlFence = "---"

// Metadata is the restricted frontmatter of a SKILL.md: exactly name and
// description, nothing else.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseSkillFile splits a SKILL.md into frontmatter metadata and markdown
// body. Unknown frontmatter keys are rejected.
func ParseSkillFile(content string) (*Metadata, string, error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, yamlFence+"\n") {
		return nil, "", fmt.Errorf("SKILL.md must start with a `%s` frontmatter fence", yamlFence)
	}

	rest := normalized[len(yamlFence)+1:]
	end := strings.Index(rest, "\n"+yamlFence)
	if end < 0 {
		return nil, "", fmt.Errorf("SKILL.md is missing the closing `%s` fence", yamlFence)
	}
	raw := rest[:end]
	body := rest[end+len(yamlFence)+1:]
	body = strings.TrimPrefix(body, "\n")

	var meta Metadata
	dec := yaml.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.KnownFields(true)
	if err := dec.Decode(&meta); err != nil {
		return nil, "", fmt.Errorf("parse SKILL.md frontmatter: %w", err)
	}

	if strings.TrimSpace(meta.Name) == "" {
		return nil, "", fmt.Errorf("SKILL.md frontmatter is missing `name`")
	}
	if strings.TrimSpace(meta.Description) == "" {
		return nil, "", fmt.Errorf("SKILL.md frontmatter is missing `description`")
	}
	if err := ValidateName(meta.Name); err != nil {
		return nil, "", err
	}

	return &meta, body, nil
}

// ValidateName enforces the skill naming rules: 1-63 characters of lowercase
// letters, digits, and single hyphens, not at the edges.
func ValidateName(name string) error {
	if name == "" || len(name) > 63 {
		return fmt.Errorf("skill name must be between 1 and 63 characters")
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		return fmt.Errorf("skill name must not start/end with `-` or contain consecutive `-`")
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("skill name must contain only lowercase letters, digits, and `-`")
		}
	}
	return nil
}
