package layout

import (
	"fmt"
	"strings"

	"github.com/hwidmann/taskcanvas/pkg/errors"
	"github.com/hwidmann/taskcanvas/pkg/problem"
	"github.com/hwidmann/taskcanvas/pkg/render"
)

// WarnStepOverflow is attached to a page whose single step exceeds the
// page height even at the minimum font size.
const WarnStepOverflow = "step taller than page at minimum font size"

// WarnEscalated is attached when a medium task had to fall back to
// step-boundary pagination.
const WarnEscalated = "task does not fit one page at minimum font size, paginating at step boundaries"

// Entry is one task's slice of a page.
type Entry struct {
	// Number is the task number the entry belongs to.
	Number int
	// Category is the effective category the placement followed.
	Category problem.Category
	// Body is this entry's share of the solution text. Joining the
	// bodies of all entries of one task yields the original solution.
	Body string
	// FigureRef names the figure drawn with this entry, empty if none.
	FigureRef string
	// Part and Parts number the entry within its task (1-based). Parts
	// is 1 for tasks that fit a single page.
	Part, Parts int
	// FontSize is the body font chosen for this entry's page.
	FontSize float64
}

// Unit is the planned content of one page.
type Unit struct {
	Entries  []Entry
	Warnings []string
}

// FigureRef returns the document-wide key for a task's figure.
func FigureRef(taskNumber int) string { return fmt.Sprintf("task-%d", taskNumber) }

// Engine plans page layouts using the geometry of one style bundle.
type Engine struct {
	bundle render.Bundle
}

// NewEngine validates the bundle and builds an engine.
func NewEngine(b render.Bundle) (*Engine, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Engine{bundle: b}, nil
}

// Plan lays every task out onto pages, in task order. figured reports
// which task numbers carry a figure (real or placeholder).
func (e *Engine) Plan(doc problem.Document, figured map[int]render.Figure) ([]Unit, error) {
	if len(doc.Tasks) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document has no tasks")
	}

	// Each short pairs with the next unpaired short, wherever it sits in
	// the document; the merged page takes the earlier short's position.
	paired := make(map[int]bool)

	var units []Unit
	for i, task := range doc.Tasks {
		if paired[i] {
			continue
		}
		switch task.EffectiveCategory() {
		case problem.CategoryShort:
			if j := nextShort(doc.Tasks, i+1, paired); j >= 0 {
				paired[j] = true
				units = append(units, e.planPair(task, doc.Tasks[j], figured))
				continue
			}
			units = append(units, e.planSingle(task, figured, e.contentHeight()))
		case problem.CategoryMedium:
			units = append(units, e.planMedium(task, figured)...)
		default:
			units = append(units, e.planLong(task, figured, nil)...)
		}
	}
	return units, nil
}

// nextShort returns the index of the first unpaired short task at or after
// from, or -1 when none remains.
func nextShort(tasks []problem.Task, from int, paired map[int]bool) int {
	for j := from; j < len(tasks); j++ {
		if !paired[j] && tasks[j].EffectiveCategory() == problem.CategoryShort {
			return j
		}
	}
	return -1
}

// planPair places two short tasks on one page, each in its own half.
func (e *Engine) planPair(a, b problem.Task, figured map[int]render.Figure) Unit {
	half := e.contentHeight() / 2
	ua := e.planSingle(a, figured, half)
	ub := e.planSingle(b, figured, half)
	return Unit{
		Entries:  append(ua.Entries, ub.Entries...),
		Warnings: append(ua.Warnings, ub.Warnings...),
	}
}

// planSingle fits one task into the given vertical space with a font
// search; it is used for short tasks (whole or half pages).
func (e *Engine) planSingle(task problem.Task, figured map[int]render.Figure, avail float64) Unit {
	ref, figH := e.figureFor(task, figured)
	font, ok := e.fitFont(task.Solution, avail-figH)
	var warnings []string
	if !ok {
		font = e.bundle.FontMin
		warnings = append(warnings, WarnStepOverflow)
	}
	return Unit{
		Entries: []Entry{{
			Number:    task.Number,
			Category:  task.EffectiveCategory(),
			Body:      task.Solution,
			FigureRef: ref,
			Part:      1,
			Parts:     1,
			FontSize:  font,
		}},
		Warnings: warnings,
	}
}

// planMedium fits the whole task onto one page at the largest workable
// font. When even the minimum font overflows, the task escalates to
// step-boundary pagination.
func (e *Engine) planMedium(task problem.Task, figured map[int]render.Figure) []Unit {
	ref, figH := e.figureFor(task, figured)
	font, ok := e.fitFont(task.Solution, e.contentHeight()-figH)
	if !ok {
		return e.planLong(task, figured, []string{WarnEscalated})
	}
	return []Unit{{
		Entries: []Entry{{
			Number:    task.Number,
			Category:  task.EffectiveCategory(),
			Body:      task.Solution,
			FigureRef: ref,
			Part:      1,
			Parts:     1,
			FontSize:  font,
		}},
	}}
}

// planLong paginates at step boundaries: pages are filled greedily with
// whole steps at the minimum font. The figure goes on the page holding
// the figure anchor, or the first page when no anchor is set.
func (e *Engine) planLong(task problem.Task, figured map[int]render.Figure, firstWarnings []string) []Unit {
	steps := problem.SplitSteps(task.Solution)
	ref, figH := e.figureFor(task, figured)
	figPage := figureStep(steps)

	font := e.bundle.FontMin
	width := e.contentWidth()

	type page struct {
		body     strings.Builder
		overflow bool
		figure   bool
	}
	var pages []*page
	cur := &page{}
	pages = append(pages, cur)
	used := 0.0

	availOn := func(p *page) float64 {
		h := e.contentHeight()
		if p.figure {
			h -= figH
		}
		return h
	}

	for i, step := range steps {
		wantFigure := ref != "" && i == figPage
		h := estimateHeight(step, font, width, e.bundle.LineHeight)

		avail := availOn(cur)
		if wantFigure {
			avail -= figH
		}
		if cur.body.Len() > 0 && used+h > avail {
			cur = &page{}
			pages = append(pages, cur)
			used = 0
		}
		if wantFigure {
			cur.figure = true
		}
		if cur.body.Len() == 0 && h > availOn(cur) {
			cur.overflow = true
		}
		cur.body.WriteString(step)
		used += h
	}

	units := make([]Unit, len(pages))
	for i, p := range pages {
		entry := Entry{
			Number:   task.Number,
			Category: task.EffectiveCategory(),
			Body:     p.body.String(),
			Part:     i + 1,
			Parts:    len(pages),
			FontSize: font,
		}
		if p.figure {
			entry.FigureRef = ref
		}
		var warnings []string
		if i == 0 {
			warnings = append(warnings, firstWarnings...)
		}
		if p.overflow {
			warnings = append(warnings, WarnStepOverflow)
		}
		units[i] = Unit{Entries: []Entry{entry}, Warnings: warnings}
	}
	return units
}

// figureFor reports the figure ref and reserved height for a task.
func (e *Engine) figureFor(task problem.Task, figured map[int]render.Figure) (string, float64) {
	if _, ok := figured[task.Number]; !ok {
		return "", 0
	}
	return FigureRef(task.Number), e.contentHeight() * figureFrac
}

// figureStep finds the step carrying the figure anchor. Without an
// anchor the figure goes on the first page.
func figureStep(steps []string) int {
	for i, s := range steps {
		if strings.Contains(s, problem.FigAnchor) {
			return i
		}
	}
	return 0
}
