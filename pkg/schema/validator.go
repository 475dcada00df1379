package schema

import (
	"fmt"
	"math"
	"strings"

	"github.com/hwidmann/taskcanvas/pkg/problem"
)

// ValidationError describes a single schema violation: where it occurred,
// what was wrong, and what shape was expected there.
type ValidationError struct {
	Path     string `json:"path"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Expected != "" {
		return fmt.Sprintf("%s: %s (expected %s)", e.Path, e.Message, e.Expected)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// maxTreeDepth bounds recursive tree payload validation.
const maxTreeDepth = 16

// =============================================================================
// Validate - One-Pass Gate
// =============================================================================

// Validate checks a parsed configuration value against the document schema
// and returns every violation found. A nil or empty result means the
// configuration is valid. The check never mutates cfg and never stops at the
// first error.
func Validate(cfg map[string]any) []ValidationError {
	c := &collector{}
	if cfg == nil {
		c.add("", "configuration is missing", "object with meta and tasks")
		return c.errs
	}

	validateMeta(c, cfg["meta"])
	validateTasks(c, cfg["tasks"])

	return c.errs
}

// Build validates cfg and, when clean, converts it into an immutable
// problem.Document. On violations, the zero Document and the full error list
// are returned.
func Build(cfg map[string]any) (problem.Document, []ValidationError) {
	if errs := Validate(cfg); len(errs) > 0 {
		return problem.Document{}, errs
	}

	meta := cfg["meta"].(map[string]any)
	doc := problem.Document{
		Meta: problem.Meta{
			Title:  meta["title"].(string),
			Author: meta["author"].(string),
			Date:   meta["date"].(string),
			Course: stringOr(meta["course"], ""),
		},
	}

	for _, raw := range cfg["tasks"].([]any) {
		tm := raw.(map[string]any)
		task := problem.Task{
			Number:   int(tm["number"].(float64)),
			Solution: tm["solution"].(string),
		}
		if cat, ok := tm["category"].(string); ok {
			task.Category, _ = problem.ParseCategory(cat)
		}
		if viz, ok := tm["visualization"].(map[string]any); ok {
			spec := &problem.VizSpec{Type: viz["type"].(string)}
			if data, ok := viz["data"].(map[string]any); ok {
				spec.Data = data
			}
			task.Viz = spec
		}
		doc.Tasks = append(doc.Tasks, task)
	}

	return doc, nil
}

// =============================================================================
// Collector
// =============================================================================

type collector struct {
	errs []ValidationError
}

func (c *collector) add(path, msg, expected string) {
	c.errs = append(c.errs, ValidationError{Path: path, Message: msg, Expected: expected})
}

// =============================================================================
// Metadata
// =============================================================================

func validateMeta(c *collector, v any) {
	m, ok := v.(map[string]any)
	if !ok {
		c.add("meta", "missing or not an object", "object {title, author, date, course}")
		return
	}

	requireString(c, m, "meta", "title", true)
	requireString(c, m, "meta", "author", true)
	requireString(c, m, "meta", "date", true)
	// Course tag may be empty but must be a string when present.
	if raw, ok := m["course"]; ok {
		if _, ok := raw.(string); !ok {
			c.add("meta.course", "not a string", "string")
		}
	}
}

func requireString(c *collector, m map[string]any, prefix, key string, nonEmpty bool) {
	path := prefix + "." + key
	raw, ok := m[key]
	if !ok {
		c.add(path, "required field is missing", "string")
		return
	}
	s, ok := raw.(string)
	if !ok {
		c.add(path, "not a string", "string")
		return
	}
	if nonEmpty && strings.TrimSpace(s) == "" {
		c.add(path, "must not be empty", "non-empty string")
	}
}

// =============================================================================
// Tasks
// =============================================================================

func validateTasks(c *collector, v any) {
	list, ok := v.([]any)
	if !ok {
		c.add("tasks", "missing or not an array", "non-empty array of tasks")
		return
	}
	if len(list) == 0 {
		c.add("tasks", "must not be empty", "at least one task")
		return
	}

	seen := map[int]int{} // number -> first index
	for i, raw := range list {
		path := fmt.Sprintf("tasks[%d]", i)
		tm, ok := raw.(map[string]any)
		if !ok {
			c.add(path, "not an object", "object {number, category?, visualization?, solution}")
			continue
		}

		if n, ok := positiveInt(tm["number"]); !ok {
			c.add(path+".number", "missing or not a positive integer", "positive integer")
		} else if first, dup := seen[n]; dup {
			c.add(path+".number", fmt.Sprintf("duplicate task number %d (first used by tasks[%d])", n, first), "globally unique number")
		} else {
			seen[n] = i
		}

		if raw, ok := tm["category"]; ok {
			s, isStr := raw.(string)
			if !isStr {
				c.add(path+".category", "not a string", `"short", "medium" or "long"`)
			} else if _, known := problem.ParseCategory(s); !known {
				c.add(path+".category", fmt.Sprintf("unrecognized category %q", s), `"short", "medium" or "long"`)
			}
		}

		requireString(c, tm, path, "solution", true)

		if raw, ok := tm["visualization"]; ok {
			validateViz(c, path+".visualization", raw)
		}
	}
}

// =============================================================================
// Visualization Payloads
// =============================================================================

func validateViz(c *collector, path string, v any) {
	m, ok := v.(map[string]any)
	if !ok {
		c.add(path, "not an object", "object {type, data}")
		return
	}

	tag, ok := m["type"].(string)
	if !ok || tag == "" {
		c.add(path+".type", "missing or not a string", "one of "+strings.Join(problem.VizTypes, ", "))
		return
	}
	if !problem.KnownVizType(tag) {
		c.add(path+".type", fmt.Sprintf("unrecognized visualization type %q", tag), "one of "+strings.Join(problem.VizTypes, ", "))
		return
	}

	data, ok := m["data"].(map[string]any)
	if !ok {
		c.add(path+".data", "missing or not an object", "payload object for type "+tag)
		return
	}

	dp := path + ".data"
	switch tag {
	case problem.VizVector2D:
		validateVector2D(c, dp, data)
	case problem.VizTriangle:
		validateTriangle(c, dp, data)
	case problem.VizCircle:
		validateCircle(c, dp, data)
	case problem.VizLineIntersection:
		validateLineIntersection(c, dp, data)
	case problem.VizFunctionPlot:
		validateFunctionPlot(c, dp, data)
	case problem.VizTree:
		validateTreeNode(c, dp+".root", data["root"], 0)
	case problem.VizGraph:
		validateGraph(c, dp, data)
	case problem.VizMatrix:
		validateMatrix(c, dp, data)
	}
}

func validateVector2D(c *collector, path string, data map[string]any) {
	pts, ok := pointList(data["points"])
	if !ok || len(pts) == 0 {
		c.add(path+".points", "missing or malformed", "non-empty array of [x, y] numeric pairs")
	}
	if raw, ok := data["base"]; ok {
		if _, ok := point(raw); !ok {
			c.add(path+".base", "malformed base point", "[x, y] numeric pair")
		}
	}
}

func validateTriangle(c *collector, path string, data map[string]any) {
	pts, ok := pointList(data["points"])
	if !ok || len(pts) != 3 {
		c.add(path+".points", "must be exactly three points", "array of three [x, y] numeric pairs")
	}
}

func validateCircle(c *collector, path string, data map[string]any) {
	_, hasCenter := data["center"]
	_, hasRadius := data["radius"]
	_, hasPoints := data["points"]

	switch {
	case hasCenter || hasRadius:
		if _, ok := point(data["center"]); !ok {
			c.add(path+".center", "malformed center point", "[x, y] numeric pair")
		}
		r, ok := number(data["radius"])
		if !ok || r <= 0 {
			c.add(path+".radius", "missing or not a positive number", "positive number")
		}
		if hasPoints {
			c.add(path, "center/radius and points are mutually exclusive", "either {center, radius} or {points}")
		}
	case hasPoints:
		pts, ok := pointList(data["points"])
		if !ok || len(pts) != 3 {
			c.add(path+".points", "must be exactly three boundary points", "array of three [x, y] numeric pairs")
		}
	default:
		c.add(path, "payload is empty", "either {center, radius} or {points}")
	}
}

func validateLineIntersection(c *collector, path string, data map[string]any) {
	lines, ok := data["lines"].([]any)
	if !ok || len(lines) != 2 {
		c.add(path+".lines", "must be exactly two lines", "array of two [a, b, c] coefficient triples")
		return
	}
	for i, raw := range lines {
		coeffs, ok := numberList(raw)
		if !ok || len(coeffs) != 3 {
			c.add(fmt.Sprintf("%s.lines[%d]", path, i), "malformed line", "[a, b, c] numeric triple for ax + by = c")
		}
	}
}

func validateFunctionPlot(c *collector, path string, data map[string]any) {
	coeffs, ok := numberList(data["coeffs"])
	if !ok || len(coeffs) == 0 {
		c.add(path+".coeffs", "missing or malformed", "non-empty array of polynomial coefficients, constant term first")
	}
	if raw, ok := data["domain"]; ok {
		d, ok := numberList(raw)
		if !ok || len(d) != 2 || d[0] >= d[1] {
			c.add(path+".domain", "malformed domain", "[min, max] with min < max")
		}
	}
}

func validateTreeNode(c *collector, path string, v any, depth int) {
	if depth > maxTreeDepth {
		c.add(path, fmt.Sprintf("tree deeper than %d levels", maxTreeDepth), "shallower tree")
		return
	}
	node, ok := v.(map[string]any)
	if !ok {
		c.add(path, "missing or not an object", "node object {label, children?}")
		return
	}
	if s, ok := node["label"].(string); !ok || s == "" {
		c.add(path+".label", "missing or not a non-empty string", "non-empty string")
	}
	if raw, ok := node["children"]; ok {
		children, ok := raw.([]any)
		if !ok {
			c.add(path+".children", "not an array", "array of node objects")
			return
		}
		for i, child := range children {
			validateTreeNode(c, fmt.Sprintf("%s.children[%d]", path, i), child, depth+1)
		}
	}
}

func validateGraph(c *collector, path string, data map[string]any) {
	rawNodes, ok := data["nodes"].([]any)
	if !ok || len(rawNodes) == 0 {
		c.add(path+".nodes", "missing or empty", "non-empty array of node name strings")
		return
	}
	names := map[string]bool{}
	for i, raw := range rawNodes {
		s, ok := raw.(string)
		if !ok || s == "" {
			c.add(fmt.Sprintf("%s.nodes[%d]", path, i), "not a non-empty string", "node name string")
			continue
		}
		if names[s] {
			c.add(fmt.Sprintf("%s.nodes[%d]", path, i), fmt.Sprintf("duplicate node %q", s), "unique node names")
		}
		names[s] = true
	}

	if raw, ok := data["edges"]; ok {
		edges, ok := raw.([]any)
		if !ok {
			c.add(path+".edges", "not an array", "array of [from, to] name pairs")
			return
		}
		for i, rawEdge := range edges {
			pair, ok := rawEdge.([]any)
			if !ok || len(pair) != 2 {
				c.add(fmt.Sprintf("%s.edges[%d]", path, i), "malformed edge", "[from, to] name pair")
				continue
			}
			for _, end := range pair {
				s, ok := end.(string)
				if !ok {
					c.add(fmt.Sprintf("%s.edges[%d]", path, i), "edge endpoint is not a string", "node name string")
				} else if !names[s] {
					c.add(fmt.Sprintf("%s.edges[%d]", path, i), fmt.Sprintf("edge references unknown node %q", s), "name listed in nodes")
				}
			}
		}
	}
}

func validateMatrix(c *collector, path string, data map[string]any) {
	rows, ok := data["values"].([]any)
	if !ok || len(rows) == 0 {
		c.add(path+".values", "missing or empty", "non-empty array of numeric rows")
		return
	}
	width := -1
	for i, raw := range rows {
		row, ok := numberList(raw)
		if !ok || len(row) == 0 {
			c.add(fmt.Sprintf("%s.values[%d]", path, i), "not a non-empty numeric array", "array of numbers")
			continue
		}
		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			c.add(fmt.Sprintf("%s.values[%d]", path, i), fmt.Sprintf("row length %d differs from %d", len(row), width), "rectangular matrix")
		}
	}
}

// =============================================================================
// Shape Helpers
// =============================================================================

func number(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

func positiveInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f <= 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func point(v any) ([2]float64, bool) {
	list, ok := numberList(v)
	if !ok || len(list) != 2 {
		return [2]float64{}, false
	}
	return [2]float64{list[0], list[1]}, true
}

func pointList(v any) ([][2]float64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	pts := make([][2]float64, 0, len(raw))
	for _, item := range raw {
		p, ok := point(item)
		if !ok {
			return nil, false
		}
		pts = append(pts, p)
	}
	return pts, true
}

func numberList(v any) ([]float64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		f, ok := number(item)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fallback
}
