package problem

import (
	"sort"
	"strings"
)

// Sentinel markers embedded in solution bodies.
const (
	// AnswerOpen and AnswerClose delimit the final-answer fragment. The
	// assembler copies the delimited text into the page footer; the body is
	// left untouched so pagination preserves the original content exactly.
	AnswerOpen  = "<answer>"
	AnswerClose = "</answer>"

	// FigAnchor marks the step fragment a visualization is attached to in
	// long-task pagination. Without it, the figure rides on the first page.
	FigAnchor = "<fig/>"
)

// Display-math delimiters (LaTeX style).
const (
	mathOpen  = `\[`
	mathClose = `\]`
)

// =============================================================================
// Step Splitting
// =============================================================================

// SplitSteps partitions a solution body into logical step fragments.
//
// Boundaries are paragraph breaks (runs of two or more newlines) and the
// start and end of display-math blocks. Paragraph breaks inside a math block
// are ignored. The fragments are a true partition: strings.Join(steps, "")
// equals the input exactly, so pagination can never lose content.
//
// Whitespace-only fragments are merged into the preceding fragment (or the
// following one at the start of the body) so they never count as steps.
func SplitSteps(body string) []string {
	if body == "" {
		return nil
	}

	spans := mathSpans(body)
	cuts := make(map[int]bool)

	for _, sp := range spans {
		cuts[sp[0]] = true
		cuts[sp[1]] = true
	}

	// Paragraph breaks: cut after each run of 2+ newlines, outside math.
	i := 0
	for i < len(body) {
		if body[i] != '\n' {
			i++
			continue
		}
		j := i
		for j < len(body) && body[j] == '\n' {
			j++
		}
		if j-i >= 2 && !insideSpan(spans, i) {
			cuts[j] = true
		}
		i = j
	}

	positions := make([]int, 0, len(cuts))
	for p := range cuts {
		if p > 0 && p < len(body) {
			positions = append(positions, p)
		}
	}
	sort.Ints(positions)

	var raw []string
	prev := 0
	for _, p := range positions {
		raw = append(raw, body[prev:p])
		prev = p
	}
	raw = append(raw, body[prev:])

	return mergeBlank(raw)
}

// CountSteps returns the number of logical steps in a solution body.
func CountSteps(body string) int {
	return len(SplitSteps(body))
}

// Classify infers a task's category from its solution structure.
//
// Thresholds: 0-1 steps -> short, 2-5 -> medium, >5 -> long. The function is
// pure: the same body always yields the same category.
func Classify(body string) Category {
	switch n := CountSteps(body); {
	case n <= 1:
		return CategoryShort
	case n <= 5:
		return CategoryMedium
	default:
		return CategoryLong
	}
}

// ExtractAnswer returns the text between the answer sentinel markers.
// The second return value is false if no marker exists in the body.
// Only the first marked fragment is extracted.
func ExtractAnswer(body string) (string, bool) {
	start := strings.Index(body, AnswerOpen)
	if start < 0 {
		return "", false
	}
	rest := body[start+len(AnswerOpen):]
	end := strings.Index(rest, AnswerClose)
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

// =============================================================================
// Internals
// =============================================================================

// mathSpans returns the [start, end) byte spans of display-math blocks.
// An unterminated opening delimiter extends to the end of the body.
func mathSpans(body string) [][2]int {
	var spans [][2]int
	off := 0
	for {
		rel := strings.Index(body[off:], mathOpen)
		if rel < 0 {
			return spans
		}
		start := off + rel
		rel = strings.Index(body[start+len(mathOpen):], mathClose)
		if rel < 0 {
			spans = append(spans, [2]int{start, len(body)})
			return spans
		}
		end := start + len(mathOpen) + rel + len(mathClose)
		spans = append(spans, [2]int{start, end})
		off = end
	}
}

// insideSpan reports whether position p falls strictly inside any span.
func insideSpan(spans [][2]int, p int) bool {
	for _, sp := range spans {
		if p > sp[0] && p < sp[1] {
			return true
		}
	}
	return false
}

// mergeBlank folds whitespace-only fragments into their neighbors, keeping
// the concatenation invariant intact.
func mergeBlank(fragments []string) []string {
	var out []string
	for _, f := range fragments {
		if strings.TrimSpace(f) == "" && len(out) > 0 {
			out[len(out)-1] += f
			continue
		}
		out = append(out, f)
	}
	// A leading blank fragment attaches to the first real one.
	if len(out) >= 2 && strings.TrimSpace(out[0]) == "" {
		out[1] = out[0] + out[1]
		out = out[1:]
	}
	return out
}
