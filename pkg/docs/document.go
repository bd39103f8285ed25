package docs

import "time"

// SourceKind identifies where raw documentation content came from.
type SourceKind string

const (
	// SourceLocalTool is output of a local command (go doc, ri, pydoc).
	SourceLocalTool SourceKind = "local-tool"

	// SourceLocalInstall is content read from an installed copy of the
	// package (node_modules README, site-packages metadata).
	SourceLocalInstall SourceKind = "local-install"

	// SourceRegistryAPI is content fetched from a package registry API.
	SourceRegistryAPI SourceKind = "registry-api"

	// SourceWebScrape is content scraped from a documentation website.
	SourceWebScrape SourceKind = "web-scrape"
)

// RawResult is the output of a successful fetch strategy. It is owned
// transiently by the resolution pipeline and never cached directly.
type RawResult struct {
	Content   []byte
	Kind      SourceKind
	FetchedAt time.Time
}

// SectionLabel classifies a documentation section.
type SectionLabel string

const (
	LabelDescription SectionLabel = "description"
	LabelUsage       SectionLabel = "usage"
	LabelAPI         SectionLabel = "api"
	LabelExample     SectionLabel = "example"
	LabelOther       SectionLabel = "other"
)

// labelPriority orders section labels for search ranking and tie-breaks.
// Higher is more relevant.
func labelPriority(l SectionLabel) int {
	switch l {
	case LabelAPI:
		return 5
	case LabelUsage:
		return 4
	case LabelExample:
		return 3
	case LabelDescription:
		return 2
	default:
		return 1
	}
}

// Section is one labeled region of a structured document.
type Section struct {
	Label   SectionLabel `json:"label"`
	Heading string       `json:"heading,omitempty"`
	Body    string       `json:"body"`
	Order   int          `json:"order"`
}

// SymbolRef is a best-effort extracted API symbol.
type SymbolRef struct {
	Name         string `json:"name"`
	Signature    string `json:"signature"`
	SectionIndex int    `json:"section_index"`
}

// Document is the normalized, cacheable form of fetched documentation.
//
// Sections are ordered as in the source; normalization of identical raw
// input always produces an identical document. Documents are read-shared by
// concurrent lookups and searches and must not be mutated after creation.
type Document struct {
	Key      Key         `json:"key"`
	Sections []Section   `json:"sections"`
	Symbols  []SymbolRef `json:"symbols,omitempty"`
	Source   SourceKind  `json:"source"`
	CachedAt time.Time   `json:"cached_at"`

	// Degraded marks a document produced from empty or unparseable raw
	// content. Degraded documents are cached with the negative TTL.
	Degraded bool `json:"degraded,omitempty"`
}

// Symbol returns the first symbol whose name matches exactly
// (case-sensitive), or nil.
func (d *Document) Symbol(name string) *SymbolRef {
	for i := range d.Symbols {
		if d.Symbols[i].Name == name {
			return &d.Symbols[i]
		}
	}
	return nil
}

// SizeEstimate approximates the document's in-memory footprint for
// byte-bounded cache capacity. It only counts section and symbol text;
// struct overhead is noise at the sizes involved.
func (d *Document) SizeEstimate() int {
	size := len(d.Key.Package) + len(d.Key.Symbol) + len(d.Key.Version)
	for _, s := range d.Sections {
		size += len(s.Heading) + len(s.Body) + 16
	}
	for _, sym := range d.Symbols {
		size += len(sym.Name) + len(sym.Signature) + 16
	}
	return size
}
