package cli

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	builtindocs "github.com/agxtool/agx/docs"
	"github.com/agxtool/agx/internal/ui"
)

type docsTopic struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

var docsCmd = &cobra.Command{
	Use:   "docs [topic]",
	Short: "Browse long-form documentation bundled into the binary",
	Long: `Browse long-form documentation bundled into the agx binary.

Without arguments, lists the available topics. With a topic id, renders it to
the terminal. For command-level usage, use 'agx help <command>'.`,
	Example: `  agx docs
  agx docs guide/getting-started
  agx docs reference/selectors`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topics, err := listBundledTopics()
		if err != nil {
			return handleError(ErrFileError, err, "Rebuild agx so bundled docs are available")
		}

		if len(args) == 0 {
			if isJSONOutput() {
				outputSuccess(topics, &Meta{Count: len(topics)})
				return nil
			}
			for _, topic := range topics {
				fmt.Printf("%s  %s\n", ui.Bold.Render(topic.ID), ui.Muted.Render(topic.Title))
			}
			fmt.Println(ui.Hint("Run 'agx docs <topic>' to read one"))
			return nil
		}

		id := normalizeTopicID(args[0])
		content, err := fs.ReadFile(builtindocs.FS, id+".md")
		if err != nil {
			return handleErrorMsg(ErrNotFound, fmt.Sprintf("unknown docs topic %q", args[0]),
				"Run 'agx docs' to list available topics")
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"id": id, "content": string(content)}, nil)
			return nil
		}
		if !ui.IsTerminal() {
			fmt.Print(string(content))
			return nil
		}
		rendered, err := ui.RenderMarkdown(string(content), ui.TermWidth())
		if err != nil {
			return handleError(ErrFileError, err, "")
		}
		fmt.Print(rendered)
		return nil
	},
}

func listBundledTopics() ([]docsTopic, error) {
	var topics []docsTopic
	err := fs.WalkDir(builtindocs.FS, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !strings.HasSuffix(p, ".md") {
			return walkErr
		}
		data, err := fs.ReadFile(builtindocs.FS, p)
		if err != nil {
			return err
		}
		topics = append(topics, docsTopic{
			ID:    strings.TrimSuffix(p, ".md"),
			Title: docTitle(string(data)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read bundled docs: %w", err)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].ID < topics[j].ID })
	return topics, nil
}

// docTitle extracts the first level-1 heading, falling back to the file name.
func docTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

func normalizeTopicID(raw string) string {
	id := strings.TrimSuffix(strings.TrimSpace(raw), ".md")
	return path.Clean(id)
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
