// Package assemble joins planned page units and rendered figures into
// the final structural document.
//
// Assembly adds the presentation scaffolding layout does not know
// about: per-section headers ("Task 3", with a part suffix when a task
// spans pages), footers holding the extracted final answer, and the
// global page sequence. It is a pure function of its inputs; assembling
// the same plan twice yields identical documents.
package assemble
