// Package problem defines the core data model for solved-problem documents.
//
// # Overview
//
// A [Document] is an ordered sequence of [Task] values plus metadata. Each
// task carries a solution body (text with embedded math markup), a size
// [Category] driving layout strategy, and an optional [VizSpec] describing a
// figure to synthesize.
//
// The package also defines [StructuralDocument], the format-agnostic output
// of the build pipeline: an ordered sequence of assembled pages with header,
// body, and footer regions plus figure references. External serializers (the
// HTML writer, image encoders) consume this type; the core never performs
// file I/O on it.
//
// # Step Splitting
//
// Solution bodies are divided into logical steps at paragraph breaks and
// display-math blocks (`\[ ... \]`). [SplitSteps] returns a partition of the
// body: concatenating the fragments in order reproduces the input
// byte-for-byte. The same boundaries drive both [Classify] and the long-task
// pagination in the layout engine, so a task never paginates differently
// from how it was classified.
//
// # Serialization
//
// Documents and structural documents serialize to JSON with round-trip
// fidelity. [UnmarshalStructural] performs shape checks so a corrupted or
// truncated artifact is rejected rather than partially loaded.
package problem
