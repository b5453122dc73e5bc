package skills

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCatalogContainsBuiltins(t *testing.T) {
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	skill, ok := catalog["create-rfc"]
	if !ok {
		t.Fatalf("catalog is missing create-rfc: %v", catalog)
	}
	if skill.Metadata.Name != "create-rfc" {
		t.Errorf("Metadata.Name = %q", skill.Metadata.Name)
	}
	if _, ok := skill.Files["SKILL.md"]; !ok {
		t.Errorf("create-rfc bundle has no SKILL.md: %v", skill.Files)
	}
	if _, ok := skill.Files["agents/openai.yaml"]; !ok {
		t.Errorf("create-rfc bundle has no agents/openai.yaml: %v", skill.Files)
	}
}

func TestInitCreatesSkillsRoot(t *testing.T) {
	root := t.TempDir()
	dir, err := Init(root)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if dir != filepath.Join(root, ".agents", "skills") {
		t.Fatalf("Init dir = %q", dir)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("skills root not created: %v", err)
	}

	// Idempotent.
	if _, err := Init(root); err != nil {
		t.Fatalf("second Init: %v", err)
	}
}

func TestNewScaffoldsSkill(t *testing.T) {
	root := t.TempDir()
	dir, err := New(root, "ask-user-question")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "SKILL.md"))
	if err != nil {
		t.Fatalf("read SKILL.md: %v", err)
	}
	meta, _, err := ParseSkillFile(string(data))
	if err != nil {
		t.Fatalf("scaffolded SKILL.md does not parse: %v", err)
	}
	if meta.Name != "ask-user-question" {
		t.Errorf("scaffolded name = %q", meta.Name)
	}

	if _, err := os.Stat(filepath.Join(dir, "agents", "openai.yaml")); err != nil {
		t.Errorf("agents/openai.yaml not scaffolded: %v", err)
	}

	// Scaffolding a valid skill yields no validation issues.
	if issues := Validate(root, "ask-user-question"); len(issues) != 0 {
		t.Errorf("Validate issues = %v, want none", issues)
	}
}

func TestNewRejectsInvalidName(t *testing.T) {
	if _, err := New(t.TempDir(), "Bad Name"); err == nil {
		t.Fatal("expected error for invalid name")
	}
}

func TestNewKeepsExistingFiles(t *testing.T) {
	root := t.TempDir()
	dir, err := New(root, "my-skill")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	edited := "---\nname: my-skill\ndescription: Edited by hand.\n---\n\n# My skill\n"
	skillPath := filepath.Join(dir, "SKILL.md")
	if err := os.WriteFile(skillPath, []byte(edited), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := New(root, "my-skill"); err != nil {
		t.Fatalf("second New: %v", err)
	}
	data, err := os.ReadFile(skillPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != edited {
		t.Fatalf("second New overwrote an existing SKILL.md")
	}
}

func TestValidateFindsIssues(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".agents", "skills", "my-skill")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	t.Run("missing SKILL.md", func(t *testing.T) {
		issues := Validate(root, "my-skill")
		if len(issues) != 1 || !strings.Contains(issues[0].Message, "SKILL.md") {
			t.Fatalf("issues = %v", issues)
		}
	})

	t.Run("name mismatch and missing heading", func(t *testing.T) {
		content := "---\nname: other-name\ndescription: d\n---\n\nNo heading here.\n"
		if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		issues := Validate(root, "my-skill")
		if len(issues) != 2 {
			t.Fatalf("issues = %v, want 2", issues)
		}
	})

	t.Run("valid skill", func(t *testing.T) {
		content := "---\nname: my-skill\ndescription: d\n---\n\n# My skill\n"
		if err := os.WriteFile(filepath.Join(dir, "SKILL.md"), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if issues := Validate(root, "my-skill"); len(issues) != 0 {
			t.Fatalf("issues = %v, want none", issues)
		}
	})
}

func TestValidateAll(t *testing.T) {
	root := t.TempDir()
	if _, err := New(root, "good-skill"); err != nil {
		t.Fatalf("New: %v", err)
	}
	badDir := filepath.Join(root, ".agents", "skills", "bad-skill")
	if err := os.MkdirAll(badDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	issues, err := ValidateAll(root)
	if err != nil {
		t.Fatalf("ValidateAll: %v", err)
	}
	if len(issues) != 1 || issues[0].Skill != "bad-skill" {
		t.Fatalf("issues = %v, want one for bad-skill", issues)
	}
}

func TestList(t *testing.T) {
	root := t.TempDir()
	if _, err := New(root, "workspace-skill"); err != nil {
		t.Fatalf("New: %v", err)
	}

	t.Run("workspace", func(t *testing.T) {
		summaries, err := List(root, OriginWorkspace)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(summaries) != 1 || summaries[0].Name != "workspace-skill" {
			t.Fatalf("summaries = %v", summaries)
		}
		if summaries[0].Origin != OriginWorkspace {
			t.Errorf("Origin = %q", summaries[0].Origin)
		}
		if summaries[0].Description == "" {
			t.Errorf("description not read from SKILL.md")
		}
	})

	t.Run("builtin", func(t *testing.T) {
		summaries, err := List(root, OriginBuiltin)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		found := false
		for _, s := range summaries {
			if s.Name == "create-rfc" {
				found = true
			}
		}
		if !found {
			t.Fatalf("builtin list is missing create-rfc: %v", summaries)
		}
	})

	t.Run("all merges both origins", func(t *testing.T) {
		summaries, err := List(root, "all")
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(summaries) < 2 {
			t.Fatalf("summaries = %v", summaries)
		}
	})

	t.Run("missing workspace directory is not an error", func(t *testing.T) {
		summaries, err := List(t.TempDir(), OriginWorkspace)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(summaries) != 0 {
			t.Fatalf("summaries = %v, want none", summaries)
		}
	})

	t.Run("unknown origin", func(t *testing.T) {
		if _, err := List(root, "remote"); err == nil {
			t.Fatal("expected error for unknown origin")
		}
	})
}

func TestInstall(t *testing.T) {
	root := t.TempDir()

	dir, err := Install(root, "create-rfc", false)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if issues := Validate(root, "create-rfc"); len(issues) != 0 {
		t.Fatalf("installed skill has issues: %v", issues)
	}
	if _, err := os.Stat(filepath.Join(dir, "agents", "openai.yaml")); err != nil {
		t.Fatalf("agents/openai.yaml not installed: %v", err)
	}

	// Installing again without force is an error; force overwrites.
	if _, err := Install(root, "create-rfc", false); err == nil {
		t.Fatal("expected error for existing skill without force")
	}
	if _, err := Install(root, "create-rfc", true); err != nil {
		t.Fatalf("Install with force: %v", err)
	}
}

func TestInstallUnknownSkill(t *testing.T) {
	if _, err := Install(t.TempDir(), "no-such-skill", false); err == nil {
		t.Fatal("expected error for unknown built-in skill")
	}
}
