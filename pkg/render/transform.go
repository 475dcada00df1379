package render

import "math"

// Point is a location in data coordinates (y grows upward).
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box in data coordinates.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// BoundsOf computes the bounding box of pts. At least one point is
// required; the zero Rect is returned for an empty slice.
func BoundsOf(pts []Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{pts[0].X, pts[0].Y, pts[0].X, pts[0].Y}
	for _, p := range pts[1:] {
		r.MinX = math.Min(r.MinX, p.X)
		r.MinY = math.Min(r.MinY, p.Y)
		r.MaxX = math.Max(r.MaxX, p.X)
		r.MaxY = math.Max(r.MaxY, p.Y)
	}
	return r
}

// Include grows the box to contain p.
func (r Rect) Include(p Point) Rect {
	r.MinX = math.Min(r.MinX, p.X)
	r.MinY = math.Min(r.MinY, p.Y)
	r.MaxX = math.Max(r.MaxX, p.X)
	r.MaxY = math.Max(r.MaxY, p.Y)
	return r
}

// Transform maps data coordinates onto the canvas. SY is negative: data
// y grows upward, SVG y grows downward.
type Transform struct {
	SX, SY, TX, TY float64
}

// Apply maps a data point to canvas coordinates.
func (t Transform) Apply(p Point) Point {
	return Point{X: t.SX*p.X + t.TX, Y: t.SY*p.Y + t.TY}
}

// ScaleLen maps a data-space length to canvas units using the x scale.
// Only meaningful for uniform transforms.
func (t Transform) ScaleLen(l float64) float64 { return t.SX * l }

// degenerateSpan pads a zero-extent dimension so division stays sane. A
// single point or a horizontal line still gets a visible, centered fit.
const degenerateSpan = 1.0

// FitTransform computes the affine map that places the data box inside
// the square canvas with the given margin fraction on every side. With
// uniform set, x and y share one scale factor (shapes keep their aspect
// ratio) and the data is centered along the slack axis; otherwise each
// axis is stretched independently.
func FitTransform(data Rect, canvas, marginFrac float64, uniform bool) Transform {
	inner := canvas * (1 - 2*marginFrac)
	margin := canvas * marginFrac

	w, h := data.Width(), data.Height()
	if w <= 0 {
		data.MinX -= degenerateSpan / 2
		data.MaxX += degenerateSpan / 2
		w = data.Width()
	}
	if h <= 0 {
		data.MinY -= degenerateSpan / 2
		data.MaxY += degenerateSpan / 2
		h = data.Height()
	}

	sx := inner / w
	sy := inner / h
	if uniform {
		s := math.Min(sx, sy)
		sx, sy = s, s
	}

	// Center the used area inside the inner square.
	padX := (inner - w*sx) / 2
	padY := (inner - h*sy) / 2

	return Transform{
		SX: sx,
		SY: -sy,
		TX: margin + padX - data.MinX*sx,
		TY: margin + padY + data.MaxY*sy,
	}
}
