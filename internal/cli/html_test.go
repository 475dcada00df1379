package cli

import (
	"strings"
	"testing"

	"github.com/hwidmann/taskcanvas/pkg/problem"
)

func testDocument() problem.StructuralDocument {
	return problem.StructuralDocument{
		Meta: problem.Meta{
			Title:  "Analysis I <Exercises>",
			Author: "H. Widmann",
			Course: "MATH 101",
			Date:   "2026-08-01",
		},
		Canvas: 1000,
		Pages: []problem.Page{
			{
				Seq:      1,
				FontSize: 18,
				Sections: []problem.Section{
					{
						Task:   1,
						Index:  1,
						Pages:  1,
						Header: "Task 1",
						Body:   "Expand (a+b)^2 & simplify.",
						Footer: "a^2 + 2ab + b^2",
					},
				},
			},
			{
				Seq: 2,
				Sections: []problem.Section{
					{
						Task:      2,
						Index:     1,
						Pages:     1,
						Header:    "Task 2",
						FigureRef: "task-2",
					},
				},
			},
		},
		Figures: map[string]problem.Figure{
			"task-2": {SVG: []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), Width: 1000, Height: 1000},
		},
		Warnings: []string{"page 2: labels crowded"},
	}
}

func TestWriteHTML(t *testing.T) {
	data, err := WriteHTML(testDocument(), "light")
	if err != nil {
		t.Fatalf("WriteHTML() error: %v", err)
	}
	out := string(data)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"Analysis I &lt;Exercises&gt;", // title escaped
		"H. Widmann",
		`data-seq="1"`,
		`data-seq="2"`,
		"font-size: 18.0px",
		"Expand (a+b)^2 &amp; simplify.", // body escaped
		"<footer>a^2 + 2ab + b^2</footer>",
		`<figure><svg xmlns="http://www.w3.org/2000/svg"></svg></figure>`,
		"page 2: labels crowded",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestWriteHTMLThemes(t *testing.T) {
	light, err := WriteHTML(testDocument(), "light")
	if err != nil {
		t.Fatalf("light theme: %v", err)
	}
	dark, err := WriteHTML(testDocument(), "dark")
	if err != nil {
		t.Fatalf("dark theme: %v", err)
	}

	if string(light) == string(dark) {
		t.Error("light and dark themes should differ")
	}
	if !strings.Contains(string(dark), "#101018") {
		t.Error("dark theme should use the dark background color")
	}
}

func TestWriteHTMLUnknownTheme(t *testing.T) {
	if _, err := WriteHTML(testDocument(), "sepia"); err == nil {
		t.Error("WriteHTML() should reject an unknown theme")
	}
}

func TestWriteHTMLEmptyTitleFallsBack(t *testing.T) {
	doc := testDocument()
	doc.Meta.Title = ""
	data, err := WriteHTML(doc, "light")
	if err != nil {
		t.Fatalf("WriteHTML() error: %v", err)
	}
	if !strings.Contains(string(data), "<title>taskcanvas</title>") {
		t.Error("empty title should fall back to the app name")
	}
}

func TestWriteHTMLDanglingFigureRefSkipped(t *testing.T) {
	doc := testDocument()
	doc.Figures = nil
	data, err := WriteHTML(doc, "light")
	if err != nil {
		t.Fatalf("WriteHTML() error: %v", err)
	}
	if strings.Contains(string(data), "<figure>") {
		t.Error("missing figure should be skipped, not rendered empty")
	}
}
