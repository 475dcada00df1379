package assemble

import (
	"strings"
	"testing"

	"github.com/hwidmann/taskcanvas/pkg/layout"
	"github.com/hwidmann/taskcanvas/pkg/problem"
	"github.com/hwidmann/taskcanvas/pkg/render"
)

var testMeta = problem.Meta{Title: "Worksheet", Author: "A. Author", Date: "2026-08-26"}

func entry(n, part, parts int, body string) layout.Entry {
	return layout.Entry{
		Number:   n,
		Category: problem.CategoryMedium,
		Body:     body,
		Part:     part,
		Parts:    parts,
		FontSize: 14,
	}
}

func TestAssembleSequencesPages(t *testing.T) {
	doc := problem.Document{Meta: testMeta}
	units := []layout.Unit{
		{Entries: []layout.Entry{entry(1, 1, 1, "first")}},
		{Entries: []layout.Entry{entry(2, 1, 2, "second, page one")}},
		{Entries: []layout.Entry{entry(2, 2, 2, "second, page two")}},
	}

	out, err := Assemble(doc, units, nil, 1000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if out.Canvas != 1000 {
		t.Errorf("canvas = %v, want 1000", out.Canvas)
	}
	if out.Meta != testMeta {
		t.Errorf("meta not carried: %+v", out.Meta)
	}
	for i, p := range out.Pages {
		if p.Seq != i+1 {
			t.Errorf("page %d has seq %d", i, p.Seq)
		}
	}
}

func TestAssembleHeaders(t *testing.T) {
	tests := []struct {
		name  string
		entry layout.Entry
		want  string
	}{
		{"single page task", entry(3, 1, 1, "x"), "Task 3"},
		{"multi page task", entry(3, 2, 4, "x"), "Task 3 (2/4)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Assemble(problem.Document{Meta: testMeta},
				[]layout.Unit{{Entries: []layout.Entry{tt.entry}}}, nil, 1000)
			if err != nil {
				t.Fatalf("Assemble: %v", err)
			}
			if got := out.Pages[0].Sections[0].Header; got != tt.want {
				t.Errorf("header = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssembleFooterFromAnswer(t *testing.T) {
	body := "We solve for x.\n\n" + problem.AnswerOpen + " x = 4 " + problem.AnswerClose
	out, err := Assemble(problem.Document{Meta: testMeta},
		[]layout.Unit{{Entries: []layout.Entry{entry(1, 1, 1, body)}}}, nil, 1000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	section := out.Pages[0].Sections[0]
	if section.Footer != "x = 4" {
		t.Errorf("footer = %q, want %q", section.Footer, "x = 4")
	}
	// The body keeps the original text; the footer is a copy.
	if section.Body != body {
		t.Error("body must stay untouched by answer extraction")
	}
}

func TestAssembleNoFooterWithoutAnswer(t *testing.T) {
	out, err := Assemble(problem.Document{Meta: testMeta},
		[]layout.Unit{{Entries: []layout.Entry{entry(1, 1, 1, "no marker here")}}}, nil, 1000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got := out.Pages[0].Sections[0].Footer; got != "" {
		t.Errorf("unexpected footer %q", got)
	}
}

func TestAssembleAttachesFigures(t *testing.T) {
	e := entry(5, 1, 1, "body")
	e.FigureRef = layout.FigureRef(5)
	figures := map[int]render.Figure{
		5: {SVG: []byte("<svg/>"), Width: 1000, Height: 1000, Warnings: []string{render.WarnCrowded}},
	}

	out, err := Assemble(problem.Document{Meta: testMeta},
		[]layout.Unit{{Entries: []layout.Entry{e}}}, figures, 1000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	fig, ok := out.Figures[layout.FigureRef(5)]
	if !ok {
		t.Fatal("figure not attached under its ref")
	}
	if string(fig.SVG) != "<svg/>" || fig.Width != 1000 {
		t.Errorf("figure content lost: %+v", fig)
	}

	found := false
	for _, w := range out.Warnings {
		if strings.Contains(w, render.WarnCrowded) {
			found = true
		}
	}
	if !found {
		t.Errorf("figure warnings must surface at document level, got %v", out.Warnings)
	}
}

func TestAssembleMissingFigure(t *testing.T) {
	e := entry(5, 1, 1, "body")
	e.FigureRef = layout.FigureRef(5)

	if _, err := Assemble(problem.Document{Meta: testMeta},
		[]layout.Unit{{Entries: []layout.Entry{e}}}, nil, 1000); err == nil {
		t.Error("dangling figure ref must fail assembly")
	}
}

func TestAssemblePairedPageFont(t *testing.T) {
	a := entry(1, 1, 1, "a")
	a.FontSize = 18
	b := entry(2, 1, 1, "b")
	b.FontSize = 13

	out, err := Assemble(problem.Document{Meta: testMeta},
		[]layout.Unit{{Entries: []layout.Entry{a, b}}}, nil, 1000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if got := out.Pages[0].FontSize; got != 13 {
		t.Errorf("paired page font = %v, want the smaller entry font 13", got)
	}
	if len(out.Pages[0].Sections) != 2 {
		t.Fatalf("paired page has %d sections", len(out.Pages[0].Sections))
	}
}

func TestAssembleRoundTrips(t *testing.T) {
	e := entry(1, 1, 1, "body")
	e.FigureRef = layout.FigureRef(1)
	figures := map[int]render.Figure{1: {SVG: []byte("<svg/>"), Width: 1000, Height: 1000}}

	out, err := Assemble(problem.Document{Meta: testMeta},
		[]layout.Unit{{Entries: []layout.Entry{e}}}, figures, 1000)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	raw, err := problem.MarshalStructural(out)
	if err != nil {
		t.Fatalf("MarshalStructural: %v", err)
	}
	if _, err := problem.UnmarshalStructural(raw); err != nil {
		t.Fatalf("assembled document fails its own shape checks: %v", err)
	}
}

func TestAssembleEmpty(t *testing.T) {
	if _, err := Assemble(problem.Document{Meta: testMeta}, nil, nil, 1000); err == nil {
		t.Error("empty unit list must be rejected")
	}
}
