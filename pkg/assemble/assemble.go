package assemble

import (
	"fmt"

	"github.com/hwidmann/taskcanvas/pkg/errors"
	"github.com/hwidmann/taskcanvas/pkg/layout"
	"github.com/hwidmann/taskcanvas/pkg/problem"
	"github.com/hwidmann/taskcanvas/pkg/render"
)

// Assemble builds the structural document from the planned units and the
// rendered figures (keyed by task number). Page sequence numbers are
// assigned here, in one pass, so they are always dense and gapless.
func Assemble(doc problem.Document, units []layout.Unit, figures map[int]render.Figure, canvas float64) (problem.StructuralDocument, error) {
	if len(units) == 0 {
		return problem.StructuralDocument{}, errors.New(errors.ErrCodeInvalidInput, "no page units to assemble")
	}

	out := problem.StructuralDocument{
		Meta:   doc.Meta,
		Canvas: canvas,
		Pages:  make([]problem.Page, 0, len(units)),
	}

	for i, unit := range units {
		page := problem.Page{
			Seq:      i + 1,
			Sections: make([]problem.Section, 0, len(unit.Entries)),
			Warnings: unit.Warnings,
		}
		for _, entry := range unit.Entries {
			section := problem.Section{
				Task:      entry.Number,
				Index:     entry.Part,
				Pages:     entry.Parts,
				Header:    header(entry),
				Body:      entry.Body,
				FigureRef: entry.FigureRef,
			}
			if answer, ok := problem.ExtractAnswer(entry.Body); ok {
				section.Footer = answer
			}
			page.Sections = append(page.Sections, section)

			if entry.FigureRef != "" {
				if err := attachFigure(&out, entry, figures); err != nil {
					return problem.StructuralDocument{}, err
				}
			}
		}
		// Paired pages share one font size: the smaller of the two keeps
		// both sections inside their halves.
		page.FontSize = minFont(unit.Entries)
		out.Pages = append(out.Pages, page)
	}

	collectWarnings(&out)
	return out, nil
}

// header labels a section. Multi-page tasks get a part suffix so
// readers can follow a solution across pages.
func header(entry layout.Entry) string {
	if entry.Parts > 1 {
		return fmt.Sprintf("Task %d (%d/%d)", entry.Number, entry.Part, entry.Parts)
	}
	return fmt.Sprintf("Task %d", entry.Number)
}

func attachFigure(out *problem.StructuralDocument, entry layout.Entry, figures map[int]render.Figure) error {
	fig, ok := figures[entry.Number]
	if !ok {
		return errors.New(errors.ErrCodeInternal,
			"layout references a figure for task %d that was never rendered", entry.Number)
	}
	if out.Figures == nil {
		out.Figures = make(map[string]problem.Figure)
	}
	out.Figures[entry.FigureRef] = problem.Figure{
		SVG:      fig.SVG,
		Width:    fig.Width,
		Height:   fig.Height,
		Warnings: fig.Warnings,
	}
	return nil
}

func minFont(entries []layout.Entry) float64 {
	font := 0.0
	for _, e := range entries {
		if font == 0 || e.FontSize < font {
			font = e.FontSize
		}
	}
	return font
}

// collectWarnings lifts page and figure warnings into the document-level
// list so callers can report them without walking the tree.
func collectWarnings(out *problem.StructuralDocument) {
	for _, p := range out.Pages {
		for _, w := range p.Warnings {
			out.Warnings = append(out.Warnings, fmt.Sprintf("page %d: %s", p.Seq, w))
		}
	}
	for _, p := range out.Pages {
		for _, s := range p.Sections {
			if s.FigureRef == "" {
				continue
			}
			for _, w := range out.Figures[s.FigureRef].Warnings {
				out.Warnings = append(out.Warnings, fmt.Sprintf("figure %s: %s", s.FigureRef, w))
			}
		}
	}
}
