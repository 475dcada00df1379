// Package pipeline provides the core document build pipeline for Taskcanvas.
//
// This package implements the complete validate → render → layout → assemble
// pipeline that can be used by CLI and server components. By centralizing this
// logic, we ensure consistent behavior across all entry points.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Validate: Gate the parsed configuration through the schema and build
//     the immutable task document
//  2. Render: Produce one square SVG figure per visualized task (parallel,
//     cached by content hash)
//  3. Layout: Place tasks onto pages by category
//  4. Assemble: Join pages and figures into the structural document
//
// # Usage
//
// Create a Runner and execute a build:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"json"}}
//	result, err := runner.Build(ctx, cfg, bundle, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	raw, _ := problem.MarshalStructural(result.Document)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/hwidmann/taskcanvas/pkg/problem"
	"github.com/hwidmann/taskcanvas/pkg/schema"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultParallelism bounds concurrent figure rendering.
	DefaultParallelism = 4
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatHTML = "html"
)

// Theme constants for HTML output.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatHTML: true,
}

// ValidThemes is the set of supported HTML themes.
var ValidThemes = map[string]bool{
	ThemeLight: true,
	ThemeDark:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one build.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Formats selects the outputs to emit (json, html).
	Formats []string `json:"formats,omitempty"`
	// Theme selects the HTML color theme.
	Theme string `json:"theme,omitempty"`
	// NoCache skips cache reads and writes for this build.
	NoCache bool `json:"no_cache,omitempty"`
	// Seed overrides the bundle's graph layout seed when non-zero.
	Seed uint64 `json:"seed,omitempty"`
	// Parallelism bounds concurrent figure rendering.
	Parallelism int `json:"parallelism,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return fmt.Errorf("invalid format: %q (must be one of: json, html)", f)
		}
	}
	if o.Theme == "" {
		o.Theme = ThemeLight
	}
	if !ValidThemes[o.Theme] {
		return fmt.Errorf("invalid theme: %q (must be one of: light, dark)", o.Theme)
	}
	if o.Parallelism <= 0 {
		o.Parallelism = DefaultParallelism
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result and Stats
// =============================================================================

// Result contains the outputs of one build.
type Result struct {
	// BuildID identifies this run; it is never part of the document, so
	// repeated builds stay byte-identical.
	BuildID uuid.UUID

	// Document is the assembled structural document.
	Document problem.StructuralDocument

	// ConfigHash is the content hash of the input configuration.
	ConfigHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains build execution statistics.
type Stats struct {
	TaskCount    int
	PageCount    int
	FigureCount  int
	ValidateTime time.Duration
	RenderTime   time.Duration
	LayoutTime   time.Duration
	AssembleTime time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	DocumentHit  bool // whole structural document came from cache
	FigureHits   int
	FigureMisses int
}

// =============================================================================
// Schema Gate Error
// =============================================================================

// SchemaErrors carries the complete violation list from the validation
// gate so callers can print every problem in one round.
type SchemaErrors struct {
	Violations []schema.ValidationError
}

// Error summarizes the violations.
func (e *SchemaErrors) Error() string {
	if len(e.Violations) == 1 {
		return "configuration invalid: " + e.Violations[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "configuration invalid: %d violations", len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.Error())
	}
	return b.String()
}
