package docs

import "testing"

func TestExtractSymbols(t *testing.T) {
	sections := []Section{
		{Label: LabelDescription, Heading: "Lib", Body: "Connect(addr) appears in prose here.", Order: 0},
		{Label: LabelAPI, Heading: "API", Order: 1, Body: "func Connect(addr string) error\n" +
			"def fetch_all(timeout=None):\n" +
			"`Client.Close()`\n" +
			"This Function Does Connect(x)\n" +
			"func Connect(addr string) error\n"},
	}

	symbols := extractSymbols(sections)
	want := []string{"Connect", "fetch_all", "Client.Close"}
	if len(symbols) != len(want) {
		t.Fatalf("symbols = %+v, want names %v", symbols, want)
	}
	for i, name := range want {
		if symbols[i].Name != name {
			t.Errorf("symbol %d = %q, want %q", i, symbols[i].Name, name)
		}
		if symbols[i].SectionIndex != 1 {
			t.Errorf("symbol %q section = %d, want 1", name, symbols[i].SectionIndex)
		}
	}
}

func TestExtractSymbolsIgnoresNonAPISections(t *testing.T) {
	sections := []Section{
		{Label: LabelUsage, Heading: "Usage", Body: "func Setup() error", Order: 0},
	}
	if symbols := extractSymbols(sections); len(symbols) != 0 {
		t.Errorf("symbols = %+v, want none outside API sections", symbols)
	}
}

func TestExtractSymbolsNothingFoundIsFine(t *testing.T) {
	sections := []Section{
		{Label: LabelAPI, Heading: "API", Body: "See the generated reference online.", Order: 0},
	}
	if symbols := extractSymbols(sections); symbols != nil {
		t.Errorf("symbols = %+v, want nil", symbols)
	}
}
