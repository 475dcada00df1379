package problem

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Category is a task's size class. It drives the layout strategy: shorts are
// paired two to a page, mediums get one auto-fitted page, longs are split
// into one page per logical step.
type Category string

// Recognized task categories.
const (
	CategoryShort  Category = "short"
	CategoryMedium Category = "medium"
	CategoryLong   Category = "long"
)

// ParseCategory maps a string to a Category.
// Returns false for unrecognized values.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryShort, CategoryMedium, CategoryLong:
		return Category(s), true
	}
	return "", false
}

// Visualization type tags. The set is closed: the validator rejects unknown
// tags upstream and the renderer dispatches over exactly these variants.
const (
	VizVector2D         = "vector_2d"
	VizTriangle         = "triangle"
	VizCircle           = "circle"
	VizLineIntersection = "line_intersection"
	VizFunctionPlot     = "function_plot"
	VizTree             = "tree"
	VizGraph            = "graph"
	VizMatrix           = "matrix"
)

// VizTypes lists all recognized visualization type tags in stable order.
var VizTypes = []string{
	VizVector2D,
	VizTriangle,
	VizCircle,
	VizLineIntersection,
	VizFunctionPlot,
	VizTree,
	VizGraph,
	VizMatrix,
}

// KnownVizType reports whether tag is a recognized visualization type.
func KnownVizType(tag string) bool {
	for _, t := range VizTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// =============================================================================
// Document - Validated Input Model
// =============================================================================

// Meta holds document-level metadata.
type Meta struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Date   string `json:"date"`
	Course string `json:"course"`
}

// Document is an ordered sequence of tasks plus metadata.
// Task numbers are unique within a document; the schema validator enforces
// this before a Document is ever constructed.
type Document struct {
	Meta  Meta   `json:"meta"`
	Tasks []Task `json:"tasks"`
}

// Task is a single solved problem. Tasks are immutable after validation:
// render and layout results are computed artifacts keyed by task number and
// never write back into the Task.
type Task struct {
	Number   int      `json:"number"`
	Category Category `json:"category,omitempty"` // empty means "infer"
	Solution string   `json:"solution"`
	Viz      *VizSpec `json:"visualization,omitempty"`
}

// EffectiveCategory returns the explicit category if set, otherwise the
// category inferred from the solution's step count. Inference only fills a
// gap; an explicit category is always respected as-is.
func (t Task) EffectiveCategory() Category {
	if t.Category != "" {
		return t.Category
	}
	return Classify(t.Solution)
}

// VizSpec is a declarative figure description: a closed type tag plus a
// type-specific data payload. The payload shape is validated against the
// tag's expected arity before rendering.
type VizSpec struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}
