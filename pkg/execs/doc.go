// Package execs provides utilities for probing and executing external
// commands, primarily the pager used by the render package.
package execs
