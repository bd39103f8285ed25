package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkgdex/pkgdex/pkg/docs"
)

// renderDocument prints a resolved document, section by section.
func renderDocument(doc *docs.Document) {
	fmt.Println(StyleTitle.Render(doc.Key.String()))
	if doc.Degraded {
		printWarning("degraded result: no structured documentation was extracted")
	}
	fmt.Println()

	for _, sec := range doc.Sections {
		renderSection(sec)
	}

	if len(doc.Symbols) > 0 {
		fmt.Println(StyleHeading.Render("Symbols"))
		for _, sym := range doc.Symbols {
			fmt.Println("  " + StyleSymbol.Render(sym.Name) + "  " + StyleDim.Render(sym.Signature))
		}
		fmt.Println()
	}
}

// renderSection prints one labeled section with its heading.
func renderSection(sec docs.Section) {
	badge := StyleLabel.Render("[" + string(sec.Label) + "]")
	heading := sec.Heading
	if heading == "" {
		heading = strings.ToUpper(string(sec.Label[:1])) + string(sec.Label[1:])
	}
	fmt.Println(badge + " " + StyleHeading.Render(heading))
	fmt.Println(indent(strings.TrimSpace(sec.Body), "  "))
	fmt.Println()
}

// renderResults prints ranked search results.
func renderResults(key docs.Key, query string, results []docs.Result) {
	fmt.Println(StyleTitle.Render(key.String()) + StyleDim.Render(" ⋅ ") + StyleValue.Render(query))
	fmt.Println()

	if len(results) == 0 {
		printInfo("no matches")
		return
	}

	for i, r := range results {
		heading := r.Heading
		if heading == "" {
			heading = string(r.Label)
		}
		line := fmt.Sprintf("%d. %s %s %s",
			i+1,
			StyleScore.Render(fmt.Sprintf("%.2f", r.Score)),
			StyleLabel.Render("["+string(r.Label)+"]"),
			StyleHeading.Render(heading))
		if r.Fuzzy {
			line += " " + StyleDim.Render("(fuzzy)")
		}
		if r.MatchedSymbol != "" {
			line += " " + StyleSymbol.Render(r.MatchedSymbol)
		}
		fmt.Println(line)
		fmt.Println("   " + StyleDim.Render(r.Snippet))
	}
}

// renderJSON writes v as indented JSON to stdout.
func renderJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
