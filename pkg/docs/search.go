package docs

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/xrash/smetrics"
)

// Result is one ranked search hit inside a resolved document.
type Result struct {
	// Section is the index of the matched section in Document.Sections.
	Section int `json:"section"`

	// Label and Heading identify the matched section for display.
	Label   SectionLabel `json:"label"`
	Heading string       `json:"heading,omitempty"`

	// Snippet is a short excerpt centered on the match.
	Snippet string `json:"snippet"`

	// Score is the ranking weight, higher is more relevant.
	Score float64 `json:"score"`

	// Fuzzy is true when the hit came from approximate token matching
	// rather than an exact substring.
	Fuzzy bool `json:"fuzzy,omitempty"`

	// MatchedSymbol names the symbol that matched the query, if any.
	MatchedSymbol string `json:"matched_symbol,omitempty"`
}

const (
	snippetWidth = 160

	// jaroWinkler parameters: standard boost threshold and prefix size.
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4

	symbolBoost = 0.3
	fuzzyWeight = 0.5
)

// labelWeight biases ranking toward reference material.
var labelWeight = map[SectionLabel]float64{
	LabelAPI:         1.0,
	LabelUsage:       0.9,
	LabelExample:     0.8,
	LabelDescription: 0.7,
	LabelOther:       0.5,
}

var tokenPattern = regexp.MustCompile(`[a-zA-Z0-9_]+`)

// Search ranks the sections of doc against query.
//
// Exact (case-insensitive) substring matches always outrank fuzzy ones.
// Fuzzy matching compares the query against individual tokens with
// Jaro-Winkler similarity and only fires when the section has no exact
// match; it can be disabled entirely. Results come back sorted by score,
// ties broken by label priority and then document order, so ranking is
// deterministic for a given document and query.
func Search(doc *Document, query string, fuzzy bool, threshold float64) []Result {
	query = strings.TrimSpace(query)
	if doc == nil || query == "" {
		return nil
	}
	lowQuery := strings.ToLower(query)

	var results []Result
	for i, sec := range doc.Sections {
		haystack := sec.Heading + "\n" + sec.Body
		lowHay := strings.ToLower(haystack)
		weight := labelWeight[sec.Label]

		if idx := strings.Index(lowHay, lowQuery); idx >= 0 {
			coverage := float64(len(lowQuery)) / float64(len(lowHay))
			if coverage > 1 {
				coverage = 1
			}
			res := Result{
				Section: i,
				Label:   sec.Label,
				Heading: sec.Heading,
				Snippet: snippet(haystack, idx, len(query)),
				Score:   (0.6 + 0.4*coverage) * weight,
			}
			boostSymbol(&res, doc, i, lowQuery, fuzzy, threshold)
			results = append(results, res)
			continue
		}

		if !fuzzy {
			continue
		}
		tok, sim, pos := bestToken(lowHay, lowQuery, threshold)
		sym, symSim := matchSymbol(doc, i, lowQuery, true, threshold)
		if tok == "" && sym == nil {
			continue
		}
		res := Result{
			Section: i,
			Label:   sec.Label,
			Heading: sec.Heading,
			Fuzzy:   true,
		}
		if tok != "" {
			res.Snippet = snippet(haystack, pos, len(tok))
			res.Score = sim * fuzzyWeight * weight
		} else {
			res.Score = symSim * fuzzyWeight * weight
		}
		if sym != nil {
			res.Score += symbolBoost
			res.MatchedSymbol = sym.Name
			if sym.Signature != "" {
				res.Snippet = sym.Signature
			}
		}
		results = append(results, res)
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		pa := labelPriority(results[a].Label)
		pb := labelPriority(results[b].Label)
		if pa != pb {
			return pa > pb
		}
		return results[a].Section < results[b].Section
	})
	return results
}

// matchSymbol finds a symbol in section i whose name matches the query,
// by containment or, when fuzzy is enabled, by Jaro-Winkler similarity at
// or above threshold. A containment hit wins outright; otherwise the most
// similar symbol is returned with its similarity.
func matchSymbol(doc *Document, i int, lowQuery string, fuzzy bool, threshold float64) (*SymbolRef, float64) {
	var best *SymbolRef
	var bestSim float64
	for idx := range doc.Symbols {
		sym := &doc.Symbols[idx]
		if sym.SectionIndex != i {
			continue
		}
		lowName := strings.ToLower(sym.Name)
		if strings.Contains(lowName, lowQuery) {
			return sym, 1
		}
		if !fuzzy {
			continue
		}
		if sim := smetrics.JaroWinkler(lowQuery, lowName, jwBoostThreshold, jwPrefixSize); sim >= threshold && sim > bestSim {
			best = sym
			bestSim = sim
		}
	}
	return best, bestSim
}

// boostSymbol applies the symbol boost to res when the query names a
// symbol of section i, and replaces the snippet with the symbol's
// signature line.
func boostSymbol(res *Result, doc *Document, i int, lowQuery string, fuzzy bool, threshold float64) {
	sym, _ := matchSymbol(doc, i, lowQuery, fuzzy, threshold)
	if sym == nil {
		return
	}
	res.Score += symbolBoost
	res.MatchedSymbol = sym.Name
	if sym.Signature != "" {
		res.Snippet = sym.Signature
	}
}

// bestToken finds the token of text most similar to query, at or above
// threshold. Returns the token, its similarity, and its byte offset.
func bestToken(text, query string, threshold float64) (string, float64, int) {
	best := ""
	bestSim := threshold
	bestPos := -1
	for _, loc := range tokenPattern.FindAllStringIndex(text, -1) {
		tok := text[loc[0]:loc[1]]
		sim := smetrics.JaroWinkler(query, tok, jwBoostThreshold, jwPrefixSize)
		if sim > bestSim || (sim == bestSim && best == "") {
			best = tok
			bestSim = sim
			bestPos = loc[0]
		}
	}
	if bestPos < 0 {
		return "", 0, -1
	}
	return best, bestSim, bestPos
}

// snippet extracts ~snippetWidth characters of text centered on the match
// at [pos, pos+n), widening to word boundaries and marking truncation with
// ellipses.
func snippet(text string, pos, n int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) <= snippetWidth {
		return strings.TrimSpace(text)
	}

	half := (snippetWidth - n) / 2
	start := pos - half
	if start < 0 {
		start = 0
	}
	end := start + snippetWidth
	if end > len(text) {
		end = len(text)
		start = end - snippetWidth
		if start < 0 {
			start = 0
		}
	}

	// Widen cuts to word boundaries where nearby.
	if start > 0 {
		if sp := strings.IndexByte(text[start:min(start+20, end)], ' '); sp >= 0 {
			start += sp + 1
		}
	}
	if end < len(text) {
		if sp := strings.LastIndexByte(text[max(start, end-20):end], ' '); sp >= 0 {
			end = max(start, end-20) + sp
		}
	}

	// Never cut mid-rune.
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	out := strings.TrimSpace(text[start:end])
	if start > 0 {
		out = "…" + out
	}
	if end < len(text) {
		out += "…"
	}
	return out
}
