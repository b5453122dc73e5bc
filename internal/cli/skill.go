package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agxtool/agx/internal/skills"
	"github.com/agxtool/agx/internal/ui"
)

var skillCmd = &cobra.Command{
	Use:   "skill",
	Short: "Initialize, create, and validate local skills",
	Long: `Initialize, create, and validate local skills.

Skills live under .agents/skills/<name>/ in the workspace. Each skill carries
a SKILL.md with YAML frontmatter (name and description only) and optional
per-agent files under agents/.`,
}

func newSkillInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the workspace skills directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceRoot()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}
			dir, err := skills.Init(root)
			if err != nil {
				return handleError(ErrFileError, err, "")
			}
			if isJSONOutput() {
				outputSuccess(map[string]string{"dir": dir}, nil)
				return nil
			}
			fmt.Println(ui.FilePath(dir))
			fmt.Println(ui.Hint("Run 'agx skill new <name>' to scaffold a skill"))
			return nil
		},
	}
}

func newSkillNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Scaffold a new workspace skill",
		Long: `Scaffold a new workspace skill.

The name must be 1-63 characters of lowercase letters, digits, and single
hyphens, with no hyphen at either edge. Existing files are left untouched.`,
		Example: `  agx skill new ask-user-question`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceRoot()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}
			dir, err := skills.New(root, args[0])
			if err != nil {
				return handleError(ErrSkillInvalid, err, "Skill names use lowercase letters, digits, and single hyphens")
			}
			if isJSONOutput() {
				outputSuccess(map[string]string{"dir": dir}, nil)
				return nil
			}
			fmt.Println(ui.FilePath(dir))
			return nil
		},
	}
}

func newSkillValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [name]",
		Short: "Validate workspace skills",
		Long: `Validate workspace skills.

Without a name, every skill under .agents/skills is checked. Each skill must
carry a SKILL.md whose frontmatter declares exactly name and description, the
name must match the directory, and the body must open with a '#' heading.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceRoot()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}

			var issues []skills.Issue
			if len(args) > 0 {
				issues = skills.Validate(root, args[0])
			} else {
				issues, err = skills.ValidateAll(root)
				if err != nil {
					return handleError(ErrFileError, err, "Run 'agx skill init' first")
				}
			}

			if isJSONOutput() {
				if len(issues) == 0 {
					outputSuccess([]skills.Issue{}, &Meta{Count: 0})
					return nil
				}
				outputError(ErrSkillInvalid, fmt.Sprintf("%d validation issue(s)", len(issues)), issues, "")
				return fmt.Errorf("validation failed")
			}

			if len(issues) == 0 {
				fmt.Println(ui.Success("all skills are valid"))
				return nil
			}
			for _, issue := range issues {
				fmt.Println(ui.Warningf("%s: %s", issue.Skill, issue.Message))
			}
			return fmt.Errorf("%d validation issue(s)", len(issues))
		},
	}
}

func newSkillListCmd() *cobra.Command {
	var origin string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and workspace skills",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceRoot()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}
			summaries, err := skills.List(root, origin)
			if err != nil {
				return handleError(ErrInvalidInput, err, "")
			}

			if isJSONOutput() {
				outputSuccess(summaries, &Meta{Count: len(summaries)})
				return nil
			}
			for _, s := range summaries {
				line := fmt.Sprintf("%s  %s", ui.Bold.Render(s.Name), ui.Muted.Render(s.Origin))
				if s.Description != "" {
					line += "\n  " + strings.TrimSpace(s.Description)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&origin, "origin", "all", "Filter by origin: builtin, workspace, all")
	return cmd
}

func newSkillInstallCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "install <name>",
		Short: "Install a built-in skill into the workspace",
		Example: `  agx skill install create-rfc
  agx skill install create-rfc --force`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceRoot()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}
			dir, err := skills.Install(root, args[0], force)
			if err != nil {
				code := ErrSkillNotFound
				if strings.Contains(err.Error(), "already installed") {
					code = ErrSkillExists
				}
				return handleError(code, err, "Run 'agx skill list --origin builtin' to see available skills")
			}
			if isJSONOutput() {
				outputSuccess(map[string]string{"dir": dir}, nil)
				return nil
			}
			fmt.Println(ui.FilePath(dir))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing installed skill")
	return cmd
}

func init() {
	skillCmd.AddCommand(newSkillInitCmd())
	skillCmd.AddCommand(newSkillNewCmd())
	skillCmd.AddCommand(newSkillValidateCmd())
	skillCmd.AddCommand(newSkillListCmd())
	skillCmd.AddCommand(newSkillInstallCmd())
	rootCmd.AddCommand(skillCmd)
}
