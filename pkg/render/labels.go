package render

// WarnCrowded is attached to a figure when label placement ran out of
// compass positions and had to accept an overlap.
const WarnCrowded = "labels crowded: annotation overlap could not be avoided"

// labelPad keeps a small gap between label boxes during collision tests.
const labelPad = 1.0

// labelGap is the distance between an anchor point and its label box.
const labelGap = 8.0

// compassDirs enumerates the candidate label positions around an anchor,
// in preference order: right of the point first, then the diagonals,
// then straight above/below and finally to the left.
var compassDirs = [8]Point{
	{1, 0},   // E
	{1, -1},  // NE
	{1, 1},   // SE
	{0, -1},  // N
	{0, 1},   // S
	{-1, -1}, // NW
	{-1, 1},  // SW
	{-1, 0},  // W
}

type labelBox struct {
	x0, y0, x1, y1 float64
}

func (b labelBox) overlaps(o labelBox) bool {
	return b.x0 < o.x1+labelPad && o.x0 < b.x1+labelPad &&
		b.y0 < o.y1+labelPad && o.y0 < b.y1+labelPad
}

// LabelPlacer positions text annotations so they avoid each other and
// the figure geometry. Placement is greedy: each label tries the eight
// compass directions around its anchor and takes the first free slot;
// when every slot collides, the east slot is used anyway and the placer
// is marked crowded.
type LabelPlacer struct {
	size    float64 // canvas side length
	boxes   []labelBox
	crowded bool
}

// NewLabelPlacer creates a placer for a square canvas of the given side
// length.
func NewLabelPlacer(size float64) *LabelPlacer {
	return &LabelPlacer{size: size}
}

// Reserve marks a region (e.g. a drawn shape) as occupied so labels
// avoid it.
func (p *LabelPlacer) Reserve(x0, y0, x1, y1 float64) {
	p.boxes = append(p.boxes, labelBox{x0, y0, x1, y1})
}

// Place finds a position for text of the given font size near anchor.
// The returned point is the text baseline start for a middle-anchored
// SVG <text> element. The bool reports whether the slot is free of
// collisions.
func (p *LabelPlacer) Place(anchor Point, text string, fontSize float64) (Point, bool) {
	w, h := textExtent(text, fontSize)

	var fallback labelBox
	for i, dir := range compassDirs {
		cx := anchor.X + dir.X*(labelGap+w/2)
		cy := anchor.Y + dir.Y*(labelGap+h/2)
		box := labelBox{cx - w/2, cy - h/2, cx + w/2, cy + h/2}
		if i == 0 {
			fallback = box
		}
		if !p.fits(box) {
			continue
		}
		p.boxes = append(p.boxes, box)
		// Baseline sits at the bottom of the box, roughly one descender up.
		return Point{cx, box.y1 - h*0.2}, true
	}

	p.crowded = true
	p.boxes = append(p.boxes, fallback)
	return Point{(fallback.x0 + fallback.x1) / 2, fallback.y1 - h*0.2}, false
}

// Crowded reports whether any label had to be placed on an overlap.
func (p *LabelPlacer) Crowded() bool { return p.crowded }

func (p *LabelPlacer) fits(box labelBox) bool {
	if box.x0 < 0 || box.y0 < 0 || box.x1 > p.size || box.y1 > p.size {
		return false
	}
	for _, o := range p.boxes {
		if box.overlaps(o) {
			return false
		}
	}
	return true
}
