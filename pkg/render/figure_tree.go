package render

import (
	"github.com/hwidmann/taskcanvas/pkg/errors"
)

// treeNode is the decoded form of one node in a tree payload.
type treeNode struct {
	label    string
	children []*treeNode
	leaves   int // leaf count of the subtree, used for span subdivision
}

// renderTree lays a rooted tree out in horizontal level bands: each
// depth gets one band, and each subtree gets a horizontal span
// proportional to its leaf count.
func (r *Renderer) renderTree(data payload) (Figure, error) {
	root, ok := decodeTree(data["root"])
	if !ok {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "tree payload has no valid root")
	}

	depth := treeDepth(root)
	size := r.bundle.CanvasSize
	m := r.bundle.margin()
	inner := size - 2*m

	bandH := inner
	if depth > 1 {
		bandH = inner / float64(depth-1)
	}

	type placed struct {
		node *treeNode
		pos  Point
	}
	var nodes []placed
	var edges [][2]Point

	// Recursive span subdivision. A node sits at the center of its span.
	var walk func(n *treeNode, level int, x0, x1 float64) Point
	walk = func(n *treeNode, level int, x0, x1 float64) Point {
		y := m
		if depth > 1 {
			y = m + float64(level)*bandH
		} else {
			y = size / 2
		}
		pos := Point{(x0 + x1) / 2, y}
		nodes = append(nodes, placed{n, pos})

		cursor := x0
		for _, child := range n.children {
			frac := float64(child.leaves) / float64(n.leaves)
			next := cursor + frac*(x1-x0)
			childPos := walk(child, level+1, cursor, next)
			edges = append(edges, [2]Point{pos, childPos})
			cursor = next
		}
		return pos
	}
	walk(root, 0, m, size-m)

	c := newCanvas(r.bundle)
	for _, e := range edges {
		c.line(e[0], e[1], r.bundle.Muted, r.bundle.StrokeWidth)
	}

	placer := NewLabelPlacer(r.bundle.CanvasSize)
	nodeR := r.bundle.LabelSize * 0.8
	for _, p := range nodes {
		c.circle(p.pos, nodeR, r.bundle.Background, r.bundle.Accent, r.bundle.StrokeWidth)
		placer.Reserve(p.pos.X-nodeR, p.pos.Y-nodeR, p.pos.X+nodeR, p.pos.Y+nodeR)
	}
	for _, p := range nodes {
		pos, _ := placer.Place(p.pos, p.node.label, r.bundle.LabelSize)
		c.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Foreground, p.node.label)
	}

	return r.finish(c, placer), nil
}

func decodeTree(v any) (*treeNode, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	label, ok := m["label"].(string)
	if !ok || label == "" {
		return nil, false
	}
	n := &treeNode{label: label}
	if raw, ok := m["children"].([]any); ok {
		for _, childRaw := range raw {
			child, ok := decodeTree(childRaw)
			if !ok {
				return nil, false
			}
			n.children = append(n.children, child)
			n.leaves += child.leaves
		}
	}
	if n.leaves == 0 {
		n.leaves = 1
	}
	return n, true
}

func treeDepth(n *treeNode) int {
	deepest := 0
	for _, child := range n.children {
		if d := treeDepth(child); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
