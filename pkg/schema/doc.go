// Package schema validates untrusted configuration values against the
// solved-problem document schema.
//
// # Overview
//
// Input configurations are frequently produced by a generative model, so the
// validator is built as a gate for a correction loop: [Validate] always runs
// to completion and enumerates every violation in a single pass, each with
// the config path where it occurred (for example `tasks[2].visualization.data`),
// a human-readable message, and the expected shape fragment. A caller can fix
// several issues per round instead of replaying one error at a time.
//
// Validation is total and side-effect-free: no correction is ever applied,
// only reported. [Build] converts a configuration into a [problem.Document]
// once it validates cleanly.
//
// The static render resource bundle is validated separately with struct tags
// (see the render package); this package deals with the dynamic, arbitrarily
// shaped part of the input that struct tags cannot express.
package schema
