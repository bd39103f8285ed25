package docs

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkgdex/pkgdex/pkg/markdown"
)

// Policy controls how heading/body nodes are classified into sections.
// The pattern lists are heuristics tuned per deployment; the classification
// priority (drop > usage > api > example > description > other) is fixed.
type Policy struct {
	// Drop matches headings whose entire section is boilerplate and is
	// removed outright (license, contributors, badges, changelog).
	Drop *regexp.Regexp

	// Usage matches getting-started style headings.
	Usage *regexp.Regexp

	// API matches reference-style headings.
	API *regexp.Regexp

	// Example matches example-style headings; the section must also
	// contain a fenced code block to be labeled Example.
	Example *regexp.Regexp

	// FallbackMessage is the body of the single Other section produced
	// when raw content yields nothing usable.
	FallbackMessage string
}

// DefaultPolicy returns the built-in classification patterns.
func DefaultPolicy() Policy {
	return Policy{
		Drop: regexp.MustCompile(`(?i)^(license|licence|copyright|contribut(ing|ors)|code of conduct|changelog|change log|release notes|sponsors?|backers?|badges?|table of contents|toc|acknowledg(e)?ments|credits|security policy)\b`),
		Usage: regexp.MustCompile(`(?i)^(usage|using|getting started|get started|quick ?start|installation|install|setup|how to use|basic usage)\b`),
		API: regexp.MustCompile(`(?i)^(api|reference|api reference|methods|functions|types|interface|documentation|public api|module contents|classes|commands|options|configuration)\b`),
		Example: regexp.MustCompile(`(?i)^(examples?|recipes|cookbook|demo|sample|snippets?)\b`),
		FallbackMessage: "No structured documentation could be extracted for this package.",
	}
}

var fenceMarker = regexp.MustCompile("(?m)^[ ]{0,3}(`{3,}|~{3,})")

// Normalize converts a heading/body tree into a structured document.
//
// Normalization is a pure function of its inputs: identical trees always
// produce identical documents. It never fails — empty or unusable input
// degrades to a single fallback Other section, which the cache records as
// a short-lived negative result.
func Normalize(tree *markdown.Tree, key Key, kind SourceKind, p Policy, now time.Time) *Document {
	doc := &Document{
		Key:      key,
		Source:   kind,
		CachedAt: now,
	}

	if tree != nil {
		haveDescription := false
		for _, node := range tree.Nodes {
			if strings.TrimSpace(node.Body) == "" && node.Heading == "" {
				continue
			}

			label, keep := classify(node, p, haveDescription)
			if !keep {
				continue
			}
			if label == LabelDescription {
				haveDescription = true
			}

			doc.Sections = append(doc.Sections, Section{
				Label:   label,
				Heading: node.Heading,
				Body:    node.Body,
				Order:   len(doc.Sections),
			})
		}
	}

	if len(doc.Sections) == 0 {
		doc.Degraded = true
		doc.Sections = []Section{{
			Label: LabelOther,
			Body:  p.FallbackMessage,
		}}
		return doc
	}

	doc.Symbols = extractSymbols(doc.Sections)
	return doc
}

// classify applies the labeling policy to one node. The second return is
// false when the section is boilerplate and must be dropped entirely.
func classify(node markdown.Node, p Policy, haveDescription bool) (SectionLabel, bool) {
	heading := strings.TrimSpace(node.Heading)

	// The preamble before any heading describes the package.
	if node.Level == 0 {
		if haveDescription {
			return LabelOther, true
		}
		return LabelDescription, true
	}

	switch {
	case p.Drop != nil && p.Drop.MatchString(heading):
		return "", false
	case p.Usage != nil && p.Usage.MatchString(heading):
		return LabelUsage, true
	case p.API != nil && p.API.MatchString(heading):
		return LabelAPI, true
	case p.Example != nil && p.Example.MatchString(heading) && fenceMarker.MatchString(node.Body):
		return LabelExample, true
	case !haveDescription:
		return LabelDescription, true
	default:
		return LabelOther, true
	}
}
