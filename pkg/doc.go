// Package pkg provides the core libraries for Taskcanvas document building.
//
// # Overview
//
// Taskcanvas converts declarative, already-solved problem sets into square
// viewport structural documents. The pkg directory is organized by pipeline
// stage plus shared infrastructure:
//
//  1. [problem] - Domain model (tasks, step splitting, structural documents)
//  2. [schema] - One-pass configuration validation with path-addressed errors
//  3. [render] - Figure rendering (eight closed visualization types)
//  4. [layout] - Page planning per task category
//  5. [assemble] - Header/body/footer assembly into the final document
//  6. [pipeline] - Orchestration (validate → render → layout → assemble)
//  7. [cache], [errors], [observability], [buildinfo] - Infrastructure
//
// # Architecture
//
// The typical data flow through Taskcanvas:
//
//	Problem-Set Configuration (JSON)
//	         ↓
//	schema.Build          validate everything, report all violations at once
//	         ↓
//	render.Renderer       auto-scaled SVG figures, deterministic per seed
//	         ↓
//	layout.Engine         pairing, font search, step-boundary pagination
//	         ↓
//	assemble.Assemble     headers, answer footers, figure attachment
//	         ↓
//	problem.StructuralDocument (JSON / HTML)
//
// All stages are pure given their inputs; the pipeline caches figures and
// whole documents keyed by content hashes, so repeated builds are
// byte-identical and cheap.
package pkg
