package skills

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

//go:embed library/*/SKILL.md library/*/agents/openai.yaml
var libraryFS embed.FS

// Skill is one loaded skill bundle: parsed metadata plus the files that make
// it up, keyed by path relative to the skill root.
type Skill struct {
	Metadata Metadata
	Files    map[string]string
}

// Summary is the lightweight list view of a skill.
type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Origin      string `json:"origin"`
	Path        string `json:"path,omitempty"`
}

// LoadCatalog loads the built-in skills embedded in the binary.
func LoadCatalog() (map[string]*Skill, error) {
	entries, err := fs.ReadDir(libraryFS, "library")
	if err != nil {
		return nil, fmt.Errorf("read embedded skill library: %w", err)
	}

	catalog := make(map[string]*Skill)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		base := path.Join("library", name)

		files := make(map[string]string)
		err := fs.WalkDir(libraryFS, base, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil || d.IsDir() {
				return walkErr
			}
			data, err := fs.ReadFile(libraryFS, p)
			if err != nil {
				return err
			}
			files[p[len(base)+1:]] = string(data)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("load embedded skill %s: %w", name, err)
		}

		skillMD, ok := files["SKILL.md"]
		if !ok {
			return nil, fmt.Errorf("embedded skill %s has no SKILL.md", name)
		}
		meta, _, err := ParseSkillFile(skillMD)
		if err != nil {
			return nil, fmt.Errorf("embedded skill %s: %w", name, err)
		}
		if meta.Name != name {
			return nil, fmt.Errorf("embedded skill %s declares mismatched name %q", name, meta.Name)
		}

		catalog[name] = &Skill{Metadata: *meta, Files: files}
	}

	if len(catalog) == 0 {
		return nil, fmt.Errorf("embedded skill library is empty")
	}
	return catalog, nil
}

// SortedSummaries returns catalog summaries ordered by name.
func SortedSummaries(catalog map[string]*Skill, origin string) []Summary {
	summaries := make([]Summary, 0, len(catalog))
	for name, skill := range catalog {
		summaries = append(summaries, Summary{
			Name:        name,
			Description: skill.Metadata.Description,
			Origin:      origin,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries
}
