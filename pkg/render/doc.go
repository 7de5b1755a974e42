// Package render prints selected files: a relative-path header, then the
// contents, through a two-tier fallback chain. The preferred external pager is
// probed once per process; when it is absent every file goes through the
// byte-for-byte dump instead.
package render
