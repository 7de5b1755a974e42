// Package selector implements the traversal and filter algorithm that turns a
// profile into an ordered sequence of selected files.
//
// Path filtering and type filtering are two independent predicates over a
// candidate's relative path; a file is selected only when both allow it, and
// exclusion always beats inclusion.
package selector
