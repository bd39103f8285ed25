// Package markdown converts raw documentation markup into an ordered
// heading/body tree.
//
// The docs engine owns the policy of which sections to keep and how to label
// them; this package owns the mechanics of finding heading boundaries. Parsing
// is backed by goldmark so that headings inside fenced code blocks, setext
// headings, and inline markup are handled per CommonMark rather than by
// ad-hoc regexes.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Node is one heading-delimited region of a document.
type Node struct {
	Level   int    // heading level 1-6; 0 for the preamble before any heading
	Heading string // heading text with inline markup flattened; empty for preamble
	Body    string // raw body text between this heading and the next
}

// Tree is the ordered sequence of heading-delimited regions.
// Order matches source order; parsing identical input always yields an
// identical tree.
type Tree struct {
	Nodes []Node
}

// headingMark locates a heading in the source.
type headingMark struct {
	level     int
	text      string
	lineStart int // byte offset of the first byte of the heading line
	lineEnd   int // byte offset just past the heading (and setext underline)
}

// setextUnderline matches a setext heading underline line.
var setextUnderline = regexp.MustCompile(`^[=-]+[ \t]*$`)

// Parse splits src into a preamble node followed by one node per heading.
// Returns an empty tree for empty or whitespace-only input.
func Parse(src []byte) *Tree {
	if len(bytes.TrimSpace(src)) == 0 {
		return &Tree{}
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	marks := collectHeadings(doc, src)

	tree := &Tree{}

	// Preamble before the first heading.
	preEnd := len(src)
	if len(marks) > 0 {
		preEnd = marks[0].lineStart
	}
	if pre := strings.TrimSpace(string(src[:preEnd])); pre != "" {
		tree.Nodes = append(tree.Nodes, Node{Body: pre})
	}

	for i, m := range marks {
		bodyEnd := len(src)
		if i+1 < len(marks) {
			bodyEnd = marks[i+1].lineStart
		}
		body := ""
		if m.lineEnd < bodyEnd {
			body = strings.TrimSpace(string(src[m.lineEnd:bodyEnd]))
		}
		tree.Nodes = append(tree.Nodes, Node{
			Level:   m.level,
			Heading: m.text,
			Body:    body,
		})
	}

	return tree
}

// collectHeadings walks the parsed document and records every heading with
// its source span. Headings nested in blockquotes or lists are included;
// "#" lines inside fenced code blocks are not headings and never appear.
func collectHeadings(doc ast.Node, src []byte) []headingMark {
	var marks []headingMark

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			return ast.WalkContinue, nil
		}

		first := h.Lines().At(0)
		last := h.Lines().At(h.Lines().Len() - 1)

		lineStart := lineStartBefore(src, first.Start)
		atx := strings.HasPrefix(strings.TrimLeft(string(src[lineStart:first.Start]), " "), "#")

		marks = append(marks, headingMark{
			level:     h.Level,
			text:      flattenText(h, src),
			lineStart: lineStart,
			lineEnd:   headingEnd(src, last.Stop, atx),
		})
		return ast.WalkSkipChildren, nil
	})

	return marks
}

// flattenText extracts the plain text of an inline tree, dropping markup.
func flattenText(n ast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(flattenText(c, src))
		}
	}
	return strings.TrimSpace(b.String())
}

// lineStartBefore returns the offset of the first byte of the line
// containing pos. Heading line segments exclude the ATX markers, so the
// line start is recovered by scanning back to the previous newline.
func lineStartBefore(src []byte, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	idx := bytes.LastIndexByte(src[:pos], '\n')
	return idx + 1
}

// headingEnd returns the offset just past the heading's final line. For
// setext headings the text segment ends before the underline, so the
// ===/--- line is consumed as well.
func headingEnd(src []byte, stop int, atx bool) int {
	end := lineEndAfter(src, stop)
	if atx {
		return end
	}
	next := lineEndAfter(src, end)
	if next > end {
		line := strings.TrimRight(string(src[end:next]), "\n")
		if setextUnderline.MatchString(line) && strings.TrimSpace(line) != "" {
			return next
		}
	}
	return end
}

// lineEndAfter returns the offset just past the newline terminating the
// line that contains (or starts at) pos.
func lineEndAfter(src []byte, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	idx := bytes.IndexByte(src[pos:], '\n')
	if idx < 0 {
		return len(src)
	}
	return pos + idx + 1
}
