package render

import (
	"fmt"
	"testing"
)

func TestLabelPlacerSeparatesLabels(t *testing.T) {
	p := NewLabelPlacer(1000)
	anchor := Point{500, 500}

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		pos, ok := p.Place(anchor, "x", 16)
		if !ok {
			t.Fatalf("placement %d reported collision with free slots remaining", i)
		}
		key := fmt.Sprintf("%.1f,%.1f", pos.X, pos.Y)
		if seen[key] {
			t.Fatalf("placement %d reused position %s", i, key)
		}
		seen[key] = true
	}
	if p.Crowded() {
		t.Error("three short labels around one anchor must fit without crowding")
	}
}

func TestLabelPlacerCrowded(t *testing.T) {
	p := NewLabelPlacer(1000)
	anchor := Point{500, 500}

	// Wide labels exhaust the compass ring quickly; eventually the placer
	// must accept an overlap and flag it.
	forced := false
	for i := 0; i < 10; i++ {
		if _, ok := p.Place(anchor, "a fairly long annotation", 16); !ok {
			forced = true
		}
	}
	if !forced {
		t.Error("ten wide labels on one anchor should not all find free slots")
	}
	if !p.Crowded() {
		t.Error("placer must report crowding after a forced overlap")
	}
}

func TestLabelPlacerAvoidsReserved(t *testing.T) {
	p := NewLabelPlacer(1000)
	// Occupy the east slot; the label must land elsewhere.
	p.Reserve(505, 480, 600, 520)

	pos, ok := p.Place(Point{500, 500}, "x", 16)
	if !ok {
		t.Fatal("one reserved box should not exhaust all slots")
	}
	if pos.X > 505 && pos.X < 600 && pos.Y > 480 && pos.Y < 520 {
		t.Errorf("label placed inside reserved region: %+v", pos)
	}
}

func TestLabelPlacerStaysOnCanvas(t *testing.T) {
	p := NewLabelPlacer(1000)
	// Anchor in the top-right corner: east and north slots leave the canvas.
	pos, ok := p.Place(Point{995, 5}, "corner label", 16)
	if !ok {
		t.Fatal("corner anchor should still find an in-bounds slot")
	}
	w, h := textExtent("corner label", 16)
	if pos.X-w/2 < 0 || pos.X+w/2 > 1000 || pos.Y-h < 0 || pos.Y > 1000 {
		t.Errorf("label leaves the canvas: %+v", pos)
	}
}
