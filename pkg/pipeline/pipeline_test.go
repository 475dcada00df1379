package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hwidmann/taskcanvas/pkg/cache"
	"github.com/hwidmann/taskcanvas/pkg/layout"
	"github.com/hwidmann/taskcanvas/pkg/problem"
	"github.com/hwidmann/taskcanvas/pkg/render"
)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func config(t *testing.T, raw string) map[string]any {
	t.Helper()
	var cfg map[string]any
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("bad test fixture: %v", err)
	}
	return cfg
}

const buildConfig = `{
	"meta": {"title": "Worksheet", "author": "A. Author", "date": "2026-08-26"},
	"tasks": [
		{"number": 1, "solution": "x = 2"},
		{"number": 2, "solution": "First step.\n\nSecond step.\n\n<answer>q.e.d.</answer>",
		 "visualization": {"type": "triangle", "data": {"points": [[0,0],[4,0],[0,3]]}}},
		{"number": 3, "solution": "Short one."}
	]
}`

func TestBuild(t *testing.T) {
	result, err := quietRunner(nil).Build(context.Background(), config(t, buildConfig), render.DefaultBundle(), Options{NoCache: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	doc := result.Document
	if len(doc.Pages) == 0 {
		t.Fatal("build produced no pages")
	}
	if doc.Canvas != render.DefaultBundle().CanvasSize {
		t.Errorf("canvas = %v", doc.Canvas)
	}
	if _, ok := doc.Figures[layout.FigureRef(2)]; !ok {
		t.Error("task 2 figure missing from document")
	}
	if result.BuildID == uuid.Nil {
		t.Error("build must be assigned an ID")
	}
	if result.Stats.TaskCount != 3 || result.Stats.PageCount != len(doc.Pages) {
		t.Errorf("stats inconsistent: %+v", result.Stats)
	}

	// Tasks 1 and 3 are short (one step); they pair across the medium
	// task, so the document holds a merged page plus the medium page.
	if len(doc.Pages) != 2 {
		t.Errorf("got %d pages, want 2", len(doc.Pages))
	}
	if len(doc.Pages[0].Sections) != 2 {
		t.Errorf("first page holds %d sections, want the paired shorts", len(doc.Pages[0].Sections))
	}

	raw, err := problem.MarshalStructural(doc)
	if err != nil {
		t.Fatalf("MarshalStructural: %v", err)
	}
	if _, err := problem.UnmarshalStructural(raw); err != nil {
		t.Fatalf("built document fails shape checks: %v", err)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	r := quietRunner(nil)
	opts := Options{NoCache: true}

	first, err := r.Build(context.Background(), config(t, buildConfig), render.DefaultBundle(), opts)
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	second, err := r.Build(context.Background(), config(t, buildConfig), render.DefaultBundle(), opts)
	if err != nil {
		t.Fatalf("second build: %v", err)
	}

	a, _ := problem.MarshalStructural(first.Document)
	b, _ := problem.MarshalStructural(second.Document)
	if !bytes.Equal(a, b) {
		t.Error("two builds of the same input differ")
	}
	if first.BuildID == second.BuildID {
		t.Error("build IDs must be unique per run")
	}
}

func TestBuildReportsAllViolations(t *testing.T) {
	cfg := config(t, `{
		"meta": {"title": "", "author": "a", "date": "d"},
		"tasks": [{"number": 1, "solution": ""}]
	}`)

	_, err := quietRunner(nil).Build(context.Background(), cfg, render.DefaultBundle(), Options{NoCache: true})
	if err == nil {
		t.Fatal("invalid config must fail")
	}
	schemaErr, ok := err.(*SchemaErrors)
	if !ok {
		t.Fatalf("want *SchemaErrors, got %T: %v", err, err)
	}
	if len(schemaErr.Violations) != 2 {
		t.Errorf("want both violations reported, got %v", schemaErr.Violations)
	}
	if !strings.Contains(schemaErr.Error(), "meta.title") {
		t.Errorf("error text must carry paths: %s", schemaErr.Error())
	}
}

func TestBuildDegradesBrokenFigure(t *testing.T) {
	cfg := config(t, `{
		"meta": {"title": "t", "author": "a", "date": "d"},
		"tasks": [
			{"number": 1, "solution": "body",
			 "visualization": {"type": "triangle", "data": {"points": [[0,0],[1,1],[2,2]]}}}
		]
	}`)

	result, err := quietRunner(nil).Build(context.Background(), cfg, render.DefaultBundle(), Options{NoCache: true})
	if err != nil {
		t.Fatalf("degenerate figure must not abort the build: %v", err)
	}

	fig, ok := result.Document.Figures[layout.FigureRef(1)]
	if !ok {
		t.Fatal("placeholder figure missing")
	}
	if !fig.Failed {
		t.Error("placeholder must be flagged as failed")
	}
	if !strings.Contains(fig.Error, "collinear") {
		t.Errorf("placeholder must carry the cause, got %q", fig.Error)
	}
	if !strings.Contains(string(fig.SVG), "figure unavailable") {
		t.Error("placeholder SVG missing its notice")
	}
}

func TestBuildUsesDocumentCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	r := quietRunner(c)

	first, err := r.Build(context.Background(), config(t, buildConfig), render.DefaultBundle(), Options{})
	if err != nil {
		t.Fatalf("first build: %v", err)
	}
	if first.CacheInfo.DocumentHit {
		t.Error("first build cannot hit the document cache")
	}

	second, err := r.Build(context.Background(), config(t, buildConfig), render.DefaultBundle(), Options{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if !second.CacheInfo.DocumentHit {
		t.Error("second identical build should hit the document cache")
	}
	// The cached path fills stats from the stored document, not from the
	// skipped pipeline stages.
	if second.Stats.TaskCount != first.Stats.TaskCount {
		t.Errorf("cached TaskCount = %d, want %d", second.Stats.TaskCount, first.Stats.TaskCount)
	}
	if second.Stats.PageCount != first.Stats.PageCount {
		t.Errorf("cached PageCount = %d, want %d", second.Stats.PageCount, first.Stats.PageCount)
	}

	a, _ := problem.MarshalStructural(first.Document)
	b, _ := problem.MarshalStructural(second.Document)
	if !bytes.Equal(a, b) {
		t.Error("cached document differs from the built one")
	}
}

func TestBuildSeedOverrideChangesKey(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	r := quietRunner(c)

	if _, err := r.Build(context.Background(), config(t, buildConfig), render.DefaultBundle(), Options{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	reseeded, err := r.Build(context.Background(), config(t, buildConfig), render.DefaultBundle(), Options{Seed: 77})
	if err != nil {
		t.Fatalf("reseeded build: %v", err)
	}
	if reseeded.CacheInfo.DocumentHit {
		t.Error("a different seed must not reuse the cached document")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults fill in", Options{}, false},
		{"valid formats", Options{Formats: []string{FormatJSON, FormatHTML}}, false},
		{"bad format", Options{Formats: []string{"docx"}}, true},
		{"bad theme", Options{Theme: "sepia"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if tt.opts.Parallelism <= 0 || tt.opts.Logger == nil || tt.opts.Theme == "" {
					t.Errorf("defaults not applied: %+v", tt.opts)
				}
			}
		})
	}
}
