package problem

import (
	"bytes"
	"testing"
)

func sampleStructural() StructuralDocument {
	return StructuralDocument{
		Meta:   Meta{Title: "Linear Algebra I", Author: "A. Student", Date: "2026-08-26", Course: "MATH-201"},
		Canvas: 480,
		Pages: []Page{
			{
				Seq:      0,
				FontSize: 16,
				Sections: []Section{
					{Task: 1, Index: 1, Pages: 1, Header: "Task 1", Body: "x^2=4", Footer: "x = ±2"},
					{Task: 2, Index: 1, Pages: 1, Header: "Task 2", Body: "trivial"},
				},
			},
			{
				Seq:      1,
				FontSize: 14,
				Sections: []Section{
					{Task: 3, Index: 1, Pages: 1, Header: "Task 3", Body: "see figure", FigureRef: "fig-3"},
				},
			},
		},
		Figures: map[string]Figure{
			"fig-3": {SVG: []byte("<svg/>"), Width: 480, Height: 480},
		},
	}
}

func TestStructuralRoundTrip(t *testing.T) {
	doc := sampleStructural()

	data, err := MarshalStructural(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	got, err := UnmarshalStructural(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(got.Pages) != 2 || got.Canvas != 480 {
		t.Errorf("round trip lost shape: pages=%d canvas=%v", len(got.Pages), got.Canvas)
	}
	if got.Pages[0].Sections[0].Footer != "x = ±2" {
		t.Errorf("footer lost: %q", got.Pages[0].Sections[0].Footer)
	}
	if !bytes.Equal(got.Figures["fig-3"].SVG, []byte("<svg/>")) {
		t.Errorf("figure bytes lost")
	}

	// Re-marshal must be byte-identical.
	again, err := MarshalStructural(got)
	if err != nil {
		t.Fatalf("re-marshal: %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("marshal is not stable across a round trip")
	}
}

func TestUnmarshalStructuralShapeChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StructuralDocument)
	}{
		{"no pages", func(d *StructuralDocument) { d.Pages = nil }},
		{"zero canvas", func(d *StructuralDocument) { d.Canvas = 0 }},
		{"dangling figure ref", func(d *StructuralDocument) { d.Figures = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := sampleStructural()
			tt.mutate(&doc)
			data, err := MarshalStructural(doc)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if _, err := UnmarshalStructural(data); err == nil {
				t.Error("expected shape check to fail")
			}
		})
	}
}

func TestUnmarshalStructuralInvalidJSON(t *testing.T) {
	if _, err := UnmarshalStructural([]byte("{not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestKnownVizType(t *testing.T) {
	for _, tag := range VizTypes {
		if !KnownVizType(tag) {
			t.Errorf("KnownVizType(%q) = false", tag)
		}
	}
	if KnownVizType("pie_chart") {
		t.Error("unknown tag accepted")
	}
}
