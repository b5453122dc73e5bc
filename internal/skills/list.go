package skills

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// Origins a skill can come from.
const (
	OriginBuiltin   = "builtin"
	OriginWorkspace = "workspace"
)

// List discovers skills by origin. Workspace skills are read from
// .agents/skills under root; built-in skills come from the embedded library.
// A missing workspace directory is not an error.
func List(root, origin string) ([]Summary, error) {
	if origin != OriginBuiltin && origin != OriginWorkspace && origin != "all" {
		return nil, fmt.Errorf("unsupported origin %q (expected: builtin, workspace, all)", origin)
	}

	var out []Summary

	if origin == OriginBuiltin || origin == "all" {
		catalog, err := LoadCatalog()
		if err != nil {
			return nil, err
		}
		out = append(out, SortedSummaries(catalog, OriginBuiltin)...)
	}

	if origin == OriginWorkspace || origin == "all" {
		workspace, err := listWorkspace(root)
		if err != nil {
			return nil, err
		}
		out = append(out, workspace...)
	}

	return out, nil
}

func listWorkspace(root string) ([]Summary, error) {
	dir := filepath.Join(root, filepath.FromSlash(SkillsRoot))
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read skills directory %s: %w", dir, err)
	}

	var out []Summary
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		name := e.Name()
		summary := Summary{Name: name, Origin: OriginWorkspace, Path: filepath.Join(dir, name)}
		if data, err := os.ReadFile(filepath.Join(dir, name, "SKILL.md")); err == nil {
			if meta, _, err := ParseSkillFile(string(data)); err == nil {
				summary.Description = meta.Description
			}
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
