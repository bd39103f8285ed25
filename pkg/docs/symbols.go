package docs

import (
	"regexp"
	"strings"
)

// maxSymbols bounds extraction so a pathological reference page can't bloat
// the cached document.
const maxSymbols = 64

// signatureLine matches signature-like lines: an optional declaration
// keyword, a name, a parenthesized parameter list, and an optional return
// or type annotation. This is best-effort pattern matching over prose and
// code blocks, not parsing.
var signatureLine = regexp.MustCompile(
	`^\s*(?:(?:pub\s+)?(?:async\s+)?(?:func|fn|def|function|fun)\s+)?` + // declaration keyword
		`(?:\([^)]*\)\s*)?` + // Go method receiver
		"`?" +
		`([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)` + // dotted name
		`\(([^()]*)\)` + // parameter list
		"`?" +
		`\s*(?:->|:|=>)?\s*[\w\[\]\*\.&<>, ]*$`) // optional return annotation

// sentenceLead rejects prose lines that happen to end in a parenthesized
// phrase; signature lines don't start with several capitalized words.
var sentenceLead = regexp.MustCompile(`^\s*(?:[A-Z][a-z]+\s+){2,}`)

// extractSymbols scans API-labeled section bodies for signature-like lines.
// Extraction is best-effort: finding nothing is fine and never an error.
// The first occurrence of a name wins so results stay deterministic.
func extractSymbols(sections []Section) []SymbolRef {
	var symbols []SymbolRef
	seen := make(map[string]bool)

	for i, sec := range sections {
		if sec.Label != LabelAPI {
			continue
		}
		for _, line := range strings.Split(sec.Body, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || len(trimmed) > 200 {
				continue
			}
			if sentenceLead.MatchString(trimmed) {
				continue
			}

			m := signatureLine.FindStringSubmatch(trimmed)
			if m == nil {
				continue
			}
			name := m[1]
			if seen[name] {
				continue
			}
			seen[name] = true

			symbols = append(symbols, SymbolRef{
				Name:         name,
				Signature:    strings.Trim(trimmed, "`"),
				SectionIndex: i,
			})
			if len(symbols) >= maxSymbols {
				return symbols
			}
		}
	}
	return symbols
}
