// Package render turns visualization specs into square SVG figures.
//
// # Overview
//
// This package contains the figure pipeline that transforms validated
// visualization payloads into self-contained SVG fragments. It provides:
//
//   - A closed dispatch over the eight supported figure types
//   - Affine auto-scaling that fits arbitrary data coordinates into the
//     square canvas (see [FitTransform])
//   - Collision-aware label placement with compass-direction fallback
//     (see [LabelPlacer])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Rendering
//
// A [Renderer] is constructed from a style [Bundle] and renders one spec
// at a time:
//
//	r := render.NewRenderer(bundle)
//	fig, err := r.Render(task.Viz)
//
// Rendering is deterministic: the same spec and bundle always produce the
// same bytes. Force-directed graph layout draws from a PRNG seeded from
// the bundle, never from global state.
//
// # Error Semantics
//
// Geometric impossibilities (collinear circle points, parallel lines)
// return coded errors rather than silently producing a wrong picture.
// Callers that want a document to survive a bad figure substitute
// [Placeholder] output and carry the cause as a warning.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
package render
