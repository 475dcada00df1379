package layout

import (
	"math"
	"strings"
)

const (
	// fontCharWidth approximates one character's advance as a multiple
	// of the font size.
	fontCharWidth = 0.55
	// headerBand and footerBand reserve vertical space (in multiples of
	// the maximum font size) for the page header and footer.
	headerBand = 2.0
	footerBand = 2.0
	// figureFrac is the share of the content height a figure occupies
	// on pages that carry one.
	figureFrac = 0.45
	// fontSearchRounds bounds the binary search; 12 halvings of a
	// realistic font range put the error well under a tenth of a point.
	fontSearchRounds = 12
)

func (e *Engine) contentWidth() float64 {
	return e.bundle.CanvasSize * (1 - 2*e.bundle.MarginFrac)
}

func (e *Engine) contentHeight() float64 {
	inner := e.bundle.CanvasSize * (1 - 2*e.bundle.MarginFrac)
	return inner - (headerBand+footerBand)*e.bundle.FontMax
}

// fitFont finds the largest font in [FontMin, FontMax] at which body
// fits the available height, by binary search. ok is false when even
// the minimum font overflows.
func (e *Engine) fitFont(body string, avail float64) (font float64, ok bool) {
	width := e.contentWidth()
	fits := func(f float64) bool {
		return estimateHeight(body, f, width, e.bundle.LineHeight) <= avail
	}

	lo, hi := e.bundle.FontMin, e.bundle.FontMax
	if !fits(lo) {
		return 0, false
	}
	if fits(hi) {
		return hi, true
	}

	// Invariant: lo fits, hi does not.
	for i := 0; i < fontSearchRounds; i++ {
		mid := (lo + hi) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, true
}

// estimateHeight predicts the rendered height of body at the given font
// size and line width, using greedy word wrapping over the estimated
// character width.
func estimateHeight(body string, font, width, lineHeight float64) float64 {
	charsPerLine := int(width / (font * fontCharWidth))
	if charsPerLine < 1 {
		charsPerLine = 1
	}

	lines := 0
	for _, hard := range strings.Split(body, "\n") {
		lines += wrappedLines(hard, charsPerLine)
	}
	return float64(lines) * font * lineHeight
}

// wrappedLines counts the lines greedy word wrap produces for one hard
// line. Words longer than the line width are broken mid-word.
func wrappedLines(s string, charsPerLine int) int {
	words := strings.Fields(s)
	if len(words) == 0 {
		return 1 // blank lines still take a line box
	}

	lines := 1
	col := 0
	for _, w := range words {
		n := len([]rune(w))
		if col > 0 {
			n++ // leading space
		}
		if col+n <= charsPerLine {
			col += n
			continue
		}
		// Break onto fresh lines; oversized words span several.
		wordLen := len([]rune(w))
		lines += int(math.Ceil(float64(wordLen) / float64(charsPerLine)))
		col = wordLen % charsPerLine
		if col == 0 {
			col = charsPerLine
		}
	}
	return lines
}
