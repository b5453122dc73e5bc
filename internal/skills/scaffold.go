package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const skillTemplate = `---
name: %s
description: Describe when an agent should reach for this skill.
---

# %s

Explain the workflow this skill covers.

## Steps

1. First step.
2. Second step.
`

const openAITemplate = `interface:
  display_name: %q
  short_description: "Describe this skill in one line"
`

// Init creates the workspace skills root. Returns the created (or existing)
// directory.
func Init(root string) (string, error) {
	dir := filepath.Join(root, filepath.FromSlash(SkillsRoot))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create skills directory %s: %w", dir, err)
	}
	return dir, nil
}

// New scaffolds a skill directory with a SKILL.md and agents/openai.yaml.
// Existing files are left untouched.
func New(root, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}

	skillDir := filepath.Join(root, filepath.FromSlash(SkillsRoot), name)
	agentsDir := filepath.Join(skillDir, "agents")
	if err := os.MkdirAll(agentsDir, 0o755); err != nil {
		return "", fmt.Errorf("create skill directory %s: %w", agentsDir, err)
	}

	files := map[string]string{
		filepath.Join(skillDir, "SKILL.md"):     fmt.Sprintf(skillTemplate, name, name),
		filepath.Join(agentsDir, "openai.yaml"): fmt.Sprintf(openAITemplate, name),
	}
	for path, content := range files {
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	return skillDir, nil
}

// Install writes a built-in skill into the workspace skills root. Without
// force, an existing skill directory is an error.
func Install(root, name string, force bool) (string, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return "", err
	}
	skill, ok := catalog[name]
	if !ok {
		return "", fmt.Errorf("unknown built-in skill %q", name)
	}

	skillDir := filepath.Join(root, filepath.FromSlash(SkillsRoot), name)
	if _, err := os.Stat(skillDir); err == nil && !force {
		return "", fmt.Errorf("skill %q is already installed at %s (use --force to overwrite)", name, skillDir)
	}

	// Deterministic write order keeps output stable.
	paths := make([]string, 0, len(skill.Files))
	for rel := range skill.Files {
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		target := filepath.Join(skillDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := os.WriteFile(target, []byte(skill.Files[rel]), 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", target, err)
		}
	}
	return skillDir, nil
}
