package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agxtool/agx/internal/rfc"
	"github.com/agxtool/agx/internal/ui"
)

var rfcCmd = &cobra.Command{
	Use:   "rfc",
	Short: "Initialize, create, and revise RFC markdown files",
	Long: `Initialize, create, and revise RFC markdown files.

'rfc init' scaffolds the RFC directory and seeds the template from the binary.
'rfc new' creates a new RFC from the resolved template source.
'rfc revise' updates an existing RFC in place and appends a revision entry.`,
}

// rfcEditFlags is the flag set shared by 'rfc new' and 'rfc revise'.
type rfcEditFlags struct {
	authors       []string
	agents        []string
	discussion    string
	trackingIssue string
	prerequisite  []string
	supersedes    []string
	supersededBy  []string
	title         string
	titleParts    []string
}

func (f *rfcEditFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVar(&f.authors, "author", nil, "Add an author to metadata (repeatable)")
	flags.StringArrayVar(&f.agents, "agent", nil, "Add an agent identifier to metadata (repeatable)")
	flags.StringVar(&f.discussion, "discussion", "", "Set the discussion reference (link or ticket id)")
	flags.StringVar(&f.trackingIssue, "tracking_issue", "", "Set the tracking issue reference (link or ticket id)")
	flags.StringArrayVar(&f.prerequisite, "prerequisite", nil, "Prerequisite RFC reference, id or title (repeatable)")
	flags.StringArrayVar(&f.supersedes, "supersedes", nil, "Superseded RFC reference, id or title (repeatable)")
	flags.StringArrayVar(&f.supersededBy, "superseded_by", nil, "Replacement RFC reference, id or title (repeatable)")
	flags.StringVar(&f.title, "title", "", "Set the RFC title directly (takes precedence over positional title)")
	flags.StringArrayVar(&f.titleParts, "title_parts", nil, "Build the RFC title by joining parts with underscores")
}

// metadata converts the flag values into an engine metadata record, keeping
// unset optional fields distinguishable from empty ones.
func (f *rfcEditFlags) metadata(cmd *cobra.Command) (rfc.Metadata, error) {
	meta := rfc.Metadata{
		Authors: f.authors,
		Agents:  f.agents,
	}

	if cmd.Flags().Changed("discussion") {
		v := f.discussion
		meta.Discussion = &v
	}
	if cmd.Flags().Changed("tracking_issue") {
		v := f.trackingIssue
		meta.TrackingIssue = &v
	}

	var err error
	if meta.Prerequisite, err = parseReferences(f.prerequisite); err != nil {
		return rfc.Metadata{}, fmt.Errorf("--prerequisite: %w", err)
	}
	if meta.Supersedes, err = parseReferences(f.supersedes); err != nil {
		return rfc.Metadata{}, fmt.Errorf("--supersedes: %w", err)
	}
	if meta.SupersededBy, err = parseReferences(f.supersededBy); err != nil {
		return rfc.Metadata{}, fmt.Errorf("--superseded_by: %w", err)
	}
	return meta, nil
}

func parseReferences(raw []string) ([]rfc.Reference, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	refs := make([]rfc.Reference, 0, len(raw))
	for _, r := range raw {
		ref, err := rfc.ParseReference(r)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

func rfcErrSuggestion(err error) string {
	var notFound *rfc.NotFoundError
	switch {
	case errors.As(err, &notFound):
		return "Run 'agx rfc list' to see existing RFCs"
	case errors.Is(err, rfc.ErrMalformedFrontmatter):
		return "The RFC frontmatter must be a TOML block between +++ fences"
	default:
		return ""
	}
}

func newRFCInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the RFC directory and seed the template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workspaceRFCDir()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}

			templatePath, err := rfc.NewService(dir).Init()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}

			if isJSONOutput() {
				outputSuccess(map[string]string{"dir": dir, "template": templatePath}, nil)
				return nil
			}
			fmt.Println(ui.FilePath(dir))
			fmt.Println(ui.FilePath(templatePath))
			fmt.Println(ui.Hint("Run 'agx rfc new --title \"...\"' to create the first RFC"))
			return nil
		},
	}
}

func newRFCNewCmd() *cobra.Command {
	var flags rfcEditFlags
	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a new RFC markdown file with TOML metadata",
		Long: `Create a new RFC markdown file with TOML metadata.

Uses rfc/0000-template.md when present, falling back to the embedded template.
The title comes from --title, --title_parts, or the positional argument, in
that order of precedence.`,
		Example: `  agx rfc new --author Freya "Add parser support"
  agx rfc new --author Freya --title_parts parser support`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workspaceRFCDir()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}

			meta, err := flags.metadata(cmd)
			if err != nil {
				return handleError(ErrInvalidInput, err, "")
			}
			if len(meta.Authors) == 0 {
				author, err := defaultAuthor()
				if err != nil {
					return handleError(ErrMissingArgument, err, "Pass --author <name>")
				}
				meta.Authors = []string{author}
			}

			title := rfc.TitleInput{Explicit: flags.title, Parts: flags.titleParts}
			if len(args) > 0 {
				title.Positional = args[0]
			}

			path, err := rfc.NewService(dir).Create(title, meta)
			if err != nil {
				return handleError(engineErrCode(err), err, rfcErrSuggestion(err))
			}

			if isJSONOutput() {
				outputSuccess(map[string]string{"path": path}, nil)
				return nil
			}
			fmt.Println(ui.FilePath(path))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRFCReviseCmd() *cobra.Command {
	var flags rfcEditFlags
	cmd := &cobra.Command{
		Use:   "revise <selector>",
		Short: "Revise an existing RFC markdown file in place",
		Long: `Revise an existing RFC markdown file in place.

The selector locates an existing RFC by id, file path, or slug fragment.
Supplied metadata flags overwrite the corresponding frontmatter fields; one
revision entry is appended and the body heading is kept in sync with the
title.`,
		Example: `  agx rfc revise 0001
  agx rfc revise --title "Updated RFC title" add-parser`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workspaceRFCDir()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}

			meta, err := flags.metadata(cmd)
			if err != nil {
				return handleError(ErrInvalidInput, err, "")
			}

			title := rfc.TitleInput{Explicit: flags.title, Parts: flags.titleParts}
			path, err := rfc.NewService(dir).Revise(args[0], title, meta)
			if err != nil {
				return handleError(engineErrCode(err), err, rfcErrSuggestion(err))
			}

			if isJSONOutput() {
				outputSuccess(map[string]string{"path": path}, nil)
				return nil
			}
			fmt.Println(ui.FilePath(path))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newRFCListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List RFC documents with their identifiers and titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workspaceRFCDir()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}

			index, err := (&rfc.Repository{Dir: dir}).Index()
			if err != nil {
				return handleError(engineErrCode(err), err, rfcErrSuggestion(err))
			}

			if isJSONOutput() {
				type row struct {
					RFC         string `json:"rfc"`
					Title       string `json:"title"`
					LastUpdated string `json:"last_updated"`
					Path        string `json:"path"`
				}
				rows := make([]row, 0, len(index))
				for _, e := range index {
					rows = append(rows, row{
						RFC:         rfc.FormatID(e.ID),
						Title:       e.Title,
						LastUpdated: rfc.Timestamp(e.LastUpdated),
						Path:        e.Path,
					})
				}
				outputSuccess(rows, &Meta{Count: len(rows)})
				return nil
			}

			for _, e := range index {
				fmt.Printf("%s  %s  %s\n",
					ui.Accent.Render(rfc.FormatID(e.ID)),
					e.Title,
					ui.Muted.Render(e.LastUpdated.UTC().Format("2006-01-02")))
			}
			return nil
		},
	}
}

func newRFCShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <selector>",
		Short: "Render an RFC document to the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := workspaceRFCDir()
			if err != nil {
				return handleError(ErrFileError, err, "")
			}

			repo := &rfc.Repository{Dir: dir}
			path, err := repo.Resolve(args[0])
			if err != nil {
				return handleError(engineErrCode(err), err, rfcErrSuggestion(err))
			}

			content, err := os.ReadFile(path)
			if err != nil {
				return handleError(ErrFileError, err, "")
			}
			doc, err := rfc.ParseDocument(string(content))
			if err != nil {
				return handleError(engineErrCode(err), err, rfcErrSuggestion(err))
			}

			if isJSONOutput() {
				outputSuccess(map[string]string{
					"path":  path,
					"rfc":   doc.Frontmatter.RFC,
					"title": doc.Frontmatter.Title,
					"body":  doc.Body,
				}, nil)
				return nil
			}

			if !ui.IsTerminal() {
				fmt.Print(string(content))
				return nil
			}

			rendered, err := ui.RenderMarkdown(doc.Body, ui.TermWidth())
			if err != nil {
				return handleError(ErrFileError, err, "")
			}
			fmt.Println(ui.Hint(fmt.Sprintf("RFC %s · last updated %s",
				doc.Frontmatter.RFC, rfc.Timestamp(doc.Frontmatter.LastUpdated))))
			fmt.Print(rendered)
			return nil
		},
	}
}

func init() {
	rfcCmd.AddCommand(newRFCInitCmd())
	rfcCmd.AddCommand(newRFCNewCmd())
	rfcCmd.AddCommand(newRFCReviseCmd())
	rfcCmd.AddCommand(newRFCListCmd())
	rfcCmd.AddCommand(newRFCShowCmd())
	rootCmd.AddCommand(rfcCmd)
}
