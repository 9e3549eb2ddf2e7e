package markdown

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// wordsPerMinute is the reading speed assumed for reading-time estimates.
const wordsPerMinute = 200

// BodyStats summarises the prose structure of a post body. The numbers feed
// hygiene checks and the exported manifest.
type BodyStats struct {
	WordCount     int
	ReadingTime   int
	Headings      []Heading
	CodeLanguages []string
	Links         []string
}

// Heading is one entry in a post's outline.
type Heading struct {
	Level  int
	Text   string
	Anchor string
}

// Inspect parses the Markdown body and derives structural stats: word count,
// reading time in minutes, the heading outline with generated anchors, the
// languages of fenced code blocks, and outbound link targets. Fenced code is
// excluded from the word count.
func Inspect(body []byte) BodyStats {
	stats := BodyStats{}
	if len(bytes.TrimSpace(body)) == 0 {
		return stats
	}

	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	root := engine.Parser().Parse(text.NewReader(body))

	languages := map[string]struct{}{}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading := Heading{
				Level: node.Level,
				Text:  string(nodeText(node, body)),
			}
			if id, ok := node.AttributeString("id"); ok {
				if anchor, ok := id.([]byte); ok {
					heading.Anchor = string(anchor)
				}
			}
			stats.Headings = append(stats.Headings, heading)
		case *ast.FencedCodeBlock:
			if lang := strings.TrimSpace(string(node.Language(body))); lang != "" {
				languages[strings.ToLower(lang)] = struct{}{}
			}
		case *ast.Link:
			if dest := string(node.Destination); dest != "" {
				stats.Links = append(stats.Links, dest)
			}
		case *ast.AutoLink:
			stats.Links = append(stats.Links, string(node.URL(body)))
		case *ast.Text:
			stats.WordCount += len(strings.Fields(string(node.Segment.Value(body))))
		case *ast.String:
			stats.WordCount += len(strings.Fields(string(node.Value)))
		}

		return ast.WalkContinue, nil
	})

	for lang := range languages {
		stats.CodeLanguages = append(stats.CodeLanguages, lang)
	}
	sort.Strings(stats.CodeLanguages)

	if stats.WordCount > 0 {
		stats.ReadingTime = (stats.WordCount + wordsPerMinute - 1) / wordsPerMinute
		if stats.ReadingTime < 1 {
			stats.ReadingTime = 1
		}
	}

	return stats
}

// nodeText flattens the text content beneath a node, skipping markup.
func nodeText(node ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.Bytes()
}
