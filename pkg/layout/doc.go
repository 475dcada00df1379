// Package layout places classified tasks onto square pages.
//
// The engine maps each task category to a placement strategy:
//
//   - short: two adjacent short tasks share one page; a trailing short
//     task gets its own page
//   - medium: the whole task goes on one page at the largest font size
//     (found by binary search) that still fits; when even the smallest
//     font overflows, the task escalates to the long strategy
//   - long: the solution is paginated at step boundaries, never inside
//     a step
//
// Layout never drops or rewrites content: the concatenated bodies of a
// task's entries reproduce its solution text exactly. A step too tall
// for a page at the minimum font still gets its own page, flagged with
// a warning, rather than being truncated.
package layout
