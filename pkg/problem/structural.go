package problem

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// StructuralDocument - Format-Agnostic Build Output
// =============================================================================

// StructuralDocument is the ordered, format-agnostic output of a document
// build. It carries everything an external serializer needs to emit a
// concrete representation: canvas dimensions, page regions, and the rendered
// figures the pages reference.
//
// The structure is deterministic for a given input document and resource
// bundle: building twice produces byte-identical JSON (figures included).
type StructuralDocument struct {
	Meta     Meta              `json:"meta"`
	Canvas   float64           `json:"canvas"` // square canvas edge, px
	Pages    []Page            `json:"pages"`
	Figures  map[string]Figure `json:"figures,omitempty"` // keyed by figure ref
	Warnings []string          `json:"warnings,omitempty"`
}

// Page is one displayable unit. Most pages carry a single section; a merged
// page for two paired short tasks carries two.
type Page struct {
	Seq      int       `json:"seq"` // global page order, assigned last
	Sections []Section `json:"sections"`
	FontSize float64   `json:"font_size,omitempty"`
	Warnings []string  `json:"warnings,omitempty"`
}

// Section is one task's region group on a page: a header label, a body
// (solution markup or a figure reference), and a footer holding the
// extracted final answer (empty if the body has no answer sentinel).
type Section struct {
	Task      int    `json:"task"`  // owning task number
	Index     int    `json:"index"` // position within the task's page sequence (1-based)
	Pages     int    `json:"pages"` // total pages for the task
	Header    string `json:"header"`
	Body      string `json:"body,omitempty"`
	FigureRef string `json:"figure_ref,omitempty"`
	Footer    string `json:"footer,omitempty"`
}

// Figure is an opaque rendered artifact plus its intrinsic bounding box in
// canvas units. Figures are never mutated after creation.
type Figure struct {
	SVG      []byte   `json:"svg"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Warnings []string `json:"warnings,omitempty"`
	Failed   bool     `json:"failed,omitempty"` // placeholder carrying an error marker
	Error    string   `json:"error,omitempty"`  // cause, when Failed
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalStructural serializes a StructuralDocument to pretty-printed JSON.
func MarshalStructural(d StructuralDocument) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalStructural deserializes JSON bytes into a StructuralDocument.
// Shape checks reject documents with no pages or dangling figure references.
func UnmarshalStructural(data []byte) (StructuralDocument, error) {
	var d StructuralDocument
	if err := json.Unmarshal(data, &d); err != nil {
		return StructuralDocument{}, fmt.Errorf("unmarshal structural document: %w", err)
	}

	if len(d.Pages) == 0 {
		return StructuralDocument{}, fmt.Errorf("structural document must contain pages")
	}
	if d.Canvas <= 0 {
		return StructuralDocument{}, fmt.Errorf("structural document must declare a positive canvas size")
	}
	for _, p := range d.Pages {
		for _, s := range p.Sections {
			if s.FigureRef == "" {
				continue
			}
			if _, ok := d.Figures[s.FigureRef]; !ok {
				return StructuralDocument{}, fmt.Errorf("page %d references unknown figure %q", p.Seq, s.FigureRef)
			}
		}
	}

	return d, nil
}

// MarshalDocument serializes a validated input Document to pretty-printed JSON.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
