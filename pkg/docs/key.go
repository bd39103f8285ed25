package docs

import "strings"

// Key identifies a cacheable documentation lookup.
//
// Two keys are equal iff all fields match exactly. Package and symbol names
// are case-sensitive; the ecosystem is normalized to lowercase at
// construction so "Go" and "go" address the same chain.
type Key struct {
	Ecosystem string
	Package   string
	Symbol    string // optional
	Version   string // optional
}

// NewKey builds a Key with a normalized ecosystem name.
func NewKey(ecosystem, pkg, symbol, version string) Key {
	return Key{
		Ecosystem: strings.ToLower(strings.TrimSpace(ecosystem)),
		Package:   strings.TrimSpace(pkg),
		Symbol:    strings.TrimSpace(symbol),
		Version:   strings.TrimSpace(version),
	}
}

// String renders the key in "ecosystem/package[@version][#symbol]" form.
// Used for log lines and as the single-flight group key.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(k.Ecosystem)
	b.WriteByte('/')
	b.WriteString(k.Package)
	if k.Version != "" {
		b.WriteByte('@')
		b.WriteString(k.Version)
	}
	if k.Symbol != "" {
		b.WriteByte('#')
		b.WriteString(k.Symbol)
	}
	return b.String()
}
