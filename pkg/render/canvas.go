package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
)

// fontCharWidth approximates the advance width of one character as a
// multiple of the font size. Good enough for sans-serif label metrics.
const fontCharWidth = 0.55

// canvas accumulates SVG markup for one square figure. All coordinates
// passed to its methods are already in canvas space.
type canvas struct {
	buf  bytes.Buffer
	b    Bundle
	size float64
}

func newCanvas(b Bundle) *canvas {
	c := &canvas{b: b, size: b.CanvasSize}
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		c.size, c.size, c.size, c.size)
	fmt.Fprintf(&c.buf, `  <rect width="%.1f" height="%.1f" fill="%s"/>`+"\n", c.size, c.size, b.Background)
	return c
}

func (c *canvas) bytes() []byte {
	c.buf.WriteString("</svg>\n")
	return c.buf.Bytes()
}

func (c *canvas) line(a, b Point, color string, width float64) {
	fmt.Fprintf(&c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		a.X, a.Y, b.X, b.Y, color, width)
}

func (c *canvas) dashedLine(a, b Point, color string, width float64) {
	fmt.Fprintf(&c.buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f" stroke-dasharray="6 4"/>`+"\n",
		a.X, a.Y, b.X, b.Y, color, width)
}

func (c *canvas) polyline(pts []Point, color string, width float64) {
	c.buf.WriteString(`  <polyline points="`)
	for i, p := range pts {
		if i > 0 {
			c.buf.WriteByte(' ')
		}
		fmt.Fprintf(&c.buf, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(&c.buf, `" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n", color, width)
}

func (c *canvas) polygon(pts []Point, fill, stroke string, width float64) {
	c.buf.WriteString(`  <polygon points="`)
	for i, p := range pts {
		if i > 0 {
			c.buf.WriteByte(' ')
		}
		fmt.Fprintf(&c.buf, "%.2f,%.2f", p.X, p.Y)
	}
	fmt.Fprintf(&c.buf, `" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n", fill, stroke, width)
}

func (c *canvas) circle(center Point, r float64, fill, stroke string, width float64) {
	fmt.Fprintf(&c.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		center.X, center.Y, r, fill, stroke, width)
}

func (c *canvas) dot(p Point, r float64, color string) {
	fmt.Fprintf(&c.buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n", p.X, p.Y, r, color)
}

func (c *canvas) rect(x, y, w, h float64, fill, stroke string, width float64) {
	fmt.Fprintf(&c.buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, w, h, fill, stroke, width)
}

// arrow draws a line with a filled triangular head at b.
func (c *canvas) arrow(a, b Point, color string, width float64) {
	c.line(a, b, color, width)

	head := 5 * width
	ang := math.Atan2(b.Y-a.Y, b.X-a.X)
	left := Point{b.X - head*math.Cos(ang-0.4), b.Y - head*math.Sin(ang-0.4)}
	right := Point{b.X - head*math.Cos(ang+0.4), b.Y - head*math.Sin(ang+0.4)}
	c.polygon([]Point{b, left, right}, color, "none", 0)
}

// anchor values mirror the SVG text-anchor attribute.
const (
	anchorStart  = "start"
	anchorMiddle = "middle"
	anchorEnd    = "end"
)

func (c *canvas) text(p Point, size float64, anchor, color, s string) {
	fmt.Fprintf(&c.buf, `  <text x="%.2f" y="%.2f" font-size="%.1f" font-family="Helvetica, Arial, sans-serif" text-anchor="%s" fill="%s">%s</text>`+"\n",
		p.X, p.Y, size, anchor, color, escapeXML(s))
}

// axes draws the coordinate axes through the data origin when the origin
// is inside the fitted box, clipped to the margin frame.
func (c *canvas) axes(t Transform) {
	m := c.b.margin()
	lo, hi := m, c.size-m
	origin := t.Apply(Point{0, 0})

	if origin.Y >= lo && origin.Y <= hi {
		c.arrow(Point{lo, origin.Y}, Point{hi, origin.Y}, c.b.Muted, c.b.StrokeWidth/2)
	}
	if origin.X >= lo && origin.X <= hi {
		c.arrow(Point{origin.X, hi}, Point{origin.X, lo}, c.b.Muted, c.b.StrokeWidth/2)
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// textExtent estimates the rendered size of a single-line string.
func textExtent(s string, fontSize float64) (w, h float64) {
	return float64(len([]rune(s))) * fontSize * fontCharWidth, fontSize
}
