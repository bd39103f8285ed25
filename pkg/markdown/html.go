package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Pre-compiled regular expressions for HTML conversion.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag   = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag       = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	headingOpen   = regexp.MustCompile(`(?i)<h([1-6])[^>]*>`)
	headingClose  = regexp.MustCompile(`(?i)</h[1-6]>`)
	preOpen       = regexp.MustCompile(`(?is)<pre[^>]*>(?:\s*<code[^>]*>)?`)
	preClose      = regexp.MustCompile(`(?is)(?:</code>\s*)?</pre>`)
	codeTag       = regexp.MustCompile(`(?i)</?code[^>]*>`)
	blockClose    = regexp.MustCompile(`(?i)</(p|div|li|tr|blockquote|table|section|article|ul|ol)>`)
	brTags        = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
	multiSpaces   = regexp.MustCompile(`[ \t]+`)
	multiNewlines = regexp.MustCompile(`\n{3,}`)
)

// FromHTML converts scraped HTML into markdown-ish plain text that can flow
// through [Parse]: h1-h6 become ATX headings, pre/code blocks become fences,
// everything else is stripped. The conversion is lossy on purpose; scraped
// doc pages only need their heading structure and text preserved.
func FromHTML(src []byte) []byte {
	s := string(src)

	// Remove invisible or structural noise first so its text never leaks.
	s = htmlComments.ReplaceAllString(s, "")
	s = headTag.ReplaceAllString(s, "")
	s = scriptTag.ReplaceAllString(s, "")
	s = styleTag.ReplaceAllString(s, "")
	s = noscriptTag.ReplaceAllString(s, "")
	s = svgTag.ReplaceAllString(s, "")

	// Map document structure to markdown equivalents.
	s = headingOpen.ReplaceAllStringFunc(s, func(m string) string {
		sub := headingOpen.FindStringSubmatch(m)
		n := int(sub[1][0] - '0')
		return "\n\n" + strings.Repeat("#", n) + " "
	})
	s = headingClose.ReplaceAllString(s, "\n\n")
	s = preOpen.ReplaceAllString(s, "\n\n```\n")
	s = preClose.ReplaceAllString(s, "\n```\n\n")
	s = codeTag.ReplaceAllString(s, "`")
	s = brTags.ReplaceAllString(s, "\n")
	s = blockClose.ReplaceAllString(s, "\n\n")

	// Strip the rest and normalize whitespace.
	s = allTags.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = multiSpaces.ReplaceAllString(s, " ")
	s = normalizeLines(s)
	s = multiNewlines.ReplaceAllString(s, "\n\n")

	return []byte(strings.TrimSpace(s))
}

// normalizeLines trims trailing whitespace per line, keeping fence content
// indentation intact on the left.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// ExtractTitle returns the text of the first h1-h6 heading in raw HTML,
// or empty string if none is found. Used by scrape fetchers for labeling.
func ExtractTitle(src []byte) string {
	converted := FromHTML(src)
	tree := Parse(converted)
	for _, n := range tree.Nodes {
		if n.Level > 0 {
			return n.Heading
		}
	}
	return ""
}

// Fence wraps text in a fenced code block, padding the fence if the content
// itself contains backtick runs.
func Fence(text string) string {
	fence := "```"
	for strings.Contains(text, fence) {
		fence += "`"
	}
	return fmt.Sprintf("%s\n%s\n%s", fence, strings.TrimRight(text, "\n"), fence)
}
