package selector_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kat-cli/kat/pkg/profile"
	"github.com/kat-cli/kat/pkg/selector"
)

// writeTree creates the given files (with trivial contents) under a temp dir.
func writeTree(t *testing.T, paths ...string) string {
	t.Helper()

	dir := t.TempDir()

	for _, p := range paths {
		full := filepath.Join(dir, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte(p+"\n"), 0o600))
	}

	return dir
}

func parseProfile(t *testing.T, doc string) *profile.Profile {
	t.Helper()

	p, err := profile.Parse([]byte(doc), "test")
	require.NoError(t, err)

	return p
}

func selectPaths(t *testing.T, p *profile.Profile, baseDir string) []string {
	t.Helper()

	s, err := selector.New(p, baseDir)
	require.NoError(t, err)

	files := s.Select()

	paths := make([]string, 0, len(files))
	for _, f := range files {
		paths = append(paths, f.Path)
	}

	return paths
}

func TestSelect(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		doc   string
		tree  []string
		want  []string
	}{
		"empty profile selects everything in order": {
			doc:  "",
			tree: []string{"a.txt", "b/b.txt"},
			want: []string{"a.txt", "b/b.txt"},
		},
		"path and type filters combined": {
			doc: `included_paths: [src]
excluded_paths: [src/generated]
included_types: [rs]
`,
			tree: []string{"src/main.rs", "src/generated/codegen.rs", "src/notes.md"},
			want: []string{"src/main.rs"},
		},
		"excluded types always apply": {
			doc: `included_types: [rs, md]
excluded_types: [md]
`,
			tree: []string{"a.rs", "b.md", "c.txt"},
			want: []string{"a.rs"},
		},
		"exclusion beats inclusion for paths": {
			doc: `included_paths: [src, src/vendor]
excluded_paths: [src/vendor]
`,
			tree: []string{"src/a.go", "src/vendor/dep.go"},
			want: []string{"src/a.go"},
		},
		"file root is included directly": {
			doc:  "included_paths: [README.md, src]\n",
			tree: []string{"README.md", "src/a.go"},
			want: []string{"README.md", "src/a.go"},
		},
		"overlapping roots deduplicate at first occurrence": {
			doc:  "included_paths: [src, src/sub]\n",
			tree: []string{"src/a.go", "src/sub/b.go"},
			want: []string{"src/a.go", "src/sub/b.go"},
		},
		"glob roots expand sorted": {
			doc:  "included_paths: ['pkg/*']\n",
			tree: []string{"pkg/b/x.go", "pkg/a/y.go", "other/z.go"},
			want: []string{"pkg/a/y.go", "pkg/b/x.go"},
		},
		"glob exclusions match components": {
			doc:  "excluded_paths: ['*_test']\n",
			tree: []string{"pkg/a.go", "pkg_test/b.go", "deep/also_test/c.go"},
			want: []string{"deep/also_test/c.go", "pkg/a.go"},
		},
		"extension without leading dot, case sensitive": {
			doc:  "included_types: [rs]\n",
			tree: []string{"a.rs", "b.RS", "c.rs.bak"},
			want: []string{"a.rs"},
		},
		"file without extension passes only empty type": {
			doc:  "included_types: ['']\n",
			tree: []string{"Makefile", "a.txt"},
			want: []string{"Makefile"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := writeTree(t, tc.tree...)
			got := selectPaths(t, parseProfile(t, tc.doc), dir)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSelect_MissingRootIsSkipped(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "src/a.go")

	p := parseProfile(t, "included_paths: [nope, src]\n")
	got := selectPaths(t, p, dir)

	assert.Equal(t, []string{"src/a.go"}, got)
}

func TestSelect_Deterministic(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "b.txt", "a.txt", "c/d.txt", "c/a/e.txt")
	p := parseProfile(t, "")

	first := selectPaths(t, p, dir)
	assert.Equal(t, []string{"a.txt", "b.txt", "c/a/e.txt", "c/d.txt"}, first)

	for range 3 {
		assert.Equal(t, first, selectPaths(t, p, dir))
	}
}

func TestSelect_ExcludedDirectoryChain(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "src/gen/deep/x.go", "src/ok/y.go")

	p := parseProfile(t, "excluded_paths: [src/gen]\n")
	got := selectPaths(t, p, dir)

	assert.Equal(t, []string{"src/ok/y.go"}, got)
}

func TestSelect_NoTypeFiltersSelectsAll(t *testing.T) {
	t.Parallel()

	dir := writeTree(t, "a.rs", "b.md", "c", "d/e.bin")
	p := parseProfile(t, "")

	got := selectPaths(t, p, dir)
	assert.Equal(t, []string{"a.rs", "b.md", "c", "d/e.bin"}, got)
}
