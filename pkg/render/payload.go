package render

// payload wraps the generic visualization data map with typed accessors.
// The schema gate guarantees shape upstream; the accessors still degrade
// to zero values instead of panicking when handed raw input.
type payload map[string]any

func (p payload) float(key string) (float64, bool) {
	f, ok := p[key].(float64)
	return f, ok
}

func (p payload) floats(key string) []float64 {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		f, ok := item.(float64)
		if !ok {
			return nil
		}
		out = append(out, f)
	}
	return out
}

func (p payload) point(key string) (Point, bool) {
	list := p.floats(key)
	if len(list) != 2 {
		return Point{}, false
	}
	return Point{list[0], list[1]}, true
}

func (p payload) points(key string) []Point {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	pts := make([]Point, 0, len(raw))
	for _, item := range raw {
		pair, ok := asFloats(item)
		if !ok || len(pair) != 2 {
			return nil
		}
		pts = append(pts, Point{pair[0], pair[1]})
	}
	return pts
}

func (p payload) strings(key string) []string {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

func asFloats(v any) ([]float64, bool) {
	raw, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, item := range raw {
		f, ok := item.(float64)
		if !ok {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}
