package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/hwidmann/taskcanvas/pkg/errors"
	"github.com/hwidmann/taskcanvas/pkg/problem"
)

// ToDOT converts a tree or graph visualization spec to Graphviz DOT.
// This is a debugging aid: the DOT route uses Graphviz's own layout
// engine instead of the deterministic built-in one, which makes node
// overlap issues easy to inspect. Other spec types are not supported.
func ToDOT(spec *problem.VizSpec) (string, error) {
	if spec == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "nil visualization spec")
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("\n")

	data := payload(spec.Data)
	switch spec.Type {
	case problem.VizTree:
		root, ok := decodeTree(data["root"])
		if !ok {
			return "", errors.New(errors.ErrCodeInvalidInput, "tree payload has no valid root")
		}
		writeTreeDOT(&buf, root, "n")
	case problem.VizGraph:
		for _, name := range data.strings("nodes") {
			fmt.Fprintf(&buf, "  %q;\n", name)
		}
		if raw, ok := data["edges"].([]any); ok {
			for _, rawEdge := range raw {
				pair, ok := rawEdge.([]any)
				if !ok || len(pair) != 2 {
					continue
				}
				fmt.Fprintf(&buf, "  %q -- %q;\n", pair[0], pair[1])
			}
		}
	default:
		return "", errors.New(errors.ErrCodeUnsupported, "DOT export supports only tree and graph specs, got %s", spec.Type)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// writeTreeDOT emits one node per tree position. Positions are keyed by
// path so duplicate labels stay distinct.
func writeTreeDOT(buf *bytes.Buffer, n *treeNode, key string) {
	fmt.Fprintf(buf, "  %q [label=%q];\n", key, n.label)
	for i, child := range n.children {
		childKey := fmt.Sprintf("%s_%d", key, i)
		writeTreeDOT(buf, child, childKey)
		fmt.Fprintf(buf, "  %q -- %q;\n", key, childKey)
	}
}

// RenderDOT renders a DOT string to SVG using Graphviz.
func RenderDOT(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render DOT")
	}
	return buf.Bytes(), nil
}
