package rfc

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const fence = "+++"

// Document is one parsed RFC file: the typed frontmatter plus the markdown
// body that follows the closing fence.
type Document struct {
	Frontmatter *Frontmatter
	Body        string
}

// ParseDocument splits file content on the +++ fences and decodes the
// frontmatter block.
func ParseDocument(content string) (*Document, error) {
	rawFM, body, err := splitFrontmatter(content)
	if err != nil {
		return nil, err
	}

	fm, err := ParseFrontmatter(rawFM)
	if err != nil {
		return nil, err
	}

	return &Document{Frontmatter: fm, Body: body}, nil
}

// Encode renders the document back to file content: fenced frontmatter, a
// blank separator line, then the body with a single trailing newline.
func (d *Document) Encode() (string, error) {
	fm, err := d.Frontmatter.Serialize()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(fence)
	b.WriteString("\n")
	b.WriteString(fm)
	b.WriteString(fence)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimLeft(d.Body, "\n"))

	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

func splitFrontmatter(content string) (frontmatter, body string, err error) {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, fence+"\n") {
		return "", "", fmt.Errorf("%w: file does not start with `%s` fence", ErrMalformedFrontmatter, fence)
	}

	rest := normalized[len(fence)+1:]
	if end := strings.Index(rest, "\n"+fence+"\n"); end >= 0 {
		return rest[:end], rest[end+len(fence)+2:], nil
	}
	// Closing fence at EOF without trailing newline.
	if end := strings.Index(rest, "\n"+fence); end >= 0 {
		body := rest[end+len(fence)+1:]
		return rest[:end], strings.TrimPrefix(body, "\n"), nil
	}

	return "", "", fmt.Errorf("%w: missing closing `%s` fence", ErrMalformedFrontmatter, fence)
}

// Heading builds the canonical top-level body heading for an RFC.
func Heading(idLabel, title string) string {
	return fmt.Sprintf("# RFC %s: %s", idLabel, title)
}

// SyncHeading rewrites the body's first level-1 heading to match the
// frontmatter title, prepending a heading when the body has none. The heading
// is located through the markdown AST so indent and marker variations don't
// break the match.
func SyncHeading(body, idLabel, title string) string {
	heading := Heading(idLabel, title)

	source := []byte(body)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var start, stop = -1, -1
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}
		seg := h.Lines().At(0)
		start, stop = lineBounds(body, seg.Start)
		return ast.WalkStop, nil
	})

	if start < 0 {
		prefixed := heading + "\n\n" + strings.TrimLeft(body, "\n")
		if !strings.HasSuffix(prefixed, "\n") {
			prefixed += "\n"
		}
		return prefixed
	}

	return body[:start] + heading + body[stop:]
}

// lineBounds returns the byte range [start, stop) of the line containing
// offset, excluding the trailing newline.
func lineBounds(s string, offset int) (int, int) {
	if offset > len(s) {
		offset = len(s)
	}
	start := strings.LastIndexByte(s[:offset], '\n') + 1
	stop := strings.IndexByte(s[offset:], '\n')
	if stop < 0 {
		stop = len(s)
	} else {
		stop += offset
	}
	return start, stop
}
