package selector

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/kat-cli/kat/pkg/profile"
)

// File is one selected file. Path is relative to the invocation root and
// /-separated; AbsPath locates the file on disk.
type File struct {
	Path    string
	AbsPath string
}

// Selector produces the ordered sequence of files selected by a profile.
// Selection is deterministic: roots are visited in declared order, directory
// trees in lexical depth-first order, and duplicates from overlapping roots
// are emitted once at their first occurrence.
type Selector struct {
	includedTypes map[string]struct{}
	excludedTypes map[string]struct{}
	baseDir       string
	roots         []string
	exclusions    []exclusion
}

// exclusion is one excluded-path pattern. The pattern always applies as a
// component-prefix match; patterns that compile as globs also apply as glob
// matches against the candidate path and each of its ancestor directories.
type exclusion struct {
	g       glob.Glob
	pattern string
}

// New creates a [Selector] for the profile, rooted at baseDir.
func New(p *profile.Profile, baseDir string) (*Selector, error) {
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve base directory %q: %w", baseDir, err)
	}

	s := &Selector{
		baseDir:       absBase,
		roots:         p.IncludedPaths,
		includedTypes: toSet(p.IncludedTypes),
		excludedTypes: toSet(p.ExcludedTypes),
	}

	for _, pat := range p.ExcludedPaths {
		cleaned := path.Clean(filepath.ToSlash(pat))

		ex := exclusion{pattern: cleaned}

		g, err := glob.Compile(cleaned, '/')
		if err != nil {
			slog.Warn("excluded path is not a valid glob, using prefix match only",
				slog.String("pattern", pat),
				slog.Any("error", err),
			)
		} else {
			ex.g = g
		}

		s.exclusions = append(s.exclusions, ex)
	}

	return s, nil
}

// Select walks the effective root set and returns the surviving candidates.
// Missing roots and unreadable entries are skipped with a diagnostic; they
// never abort the run.
func (s *Selector) Select() []File {
	roots := s.roots
	if len(roots) == 0 {
		// No implicit recursion root beyond the invocation directory.
		roots = []string{"."}
	}

	seen := map[string]struct{}{}

	var files []File

	for _, root := range roots {
		for _, expanded := range s.expandRoot(root) {
			files = s.walkRoot(expanded, seen, files)
		}
	}

	return files
}

// expandRoot resolves one included_paths entry to concrete roots. Entries
// containing glob metacharacters are expanded against the filesystem, in
// sorted order; literal entries pass through unchanged.
func (s *Selector) expandRoot(root string) []string {
	cleaned := path.Clean(filepath.ToSlash(root))

	if !strings.ContainsAny(cleaned, "*?[") {
		return []string{cleaned}
	}

	matches, err := filepath.Glob(filepath.Join(s.baseDir, filepath.FromSlash(cleaned)))
	if err != nil {
		slog.Warn("skipping root with malformed glob pattern",
			slog.String("root", root),
			slog.Any("error", err),
		)

		return nil
	}

	if len(matches) == 0 {
		slog.Warn("root pattern matched nothing", slog.String("root", root))

		return nil
	}

	roots := make([]string, 0, len(matches))

	for _, m := range matches {
		rel, err := filepath.Rel(s.baseDir, m)
		if err != nil {
			slog.Warn("skipping root outside the invocation directory",
				slog.String("root", m),
				slog.Any("error", err),
			)

			continue
		}

		roots = append(roots, filepath.ToSlash(rel))
	}

	return roots
}

func (s *Selector) walkRoot(root string, seen map[string]struct{}, files []File) []File {
	full := filepath.Join(s.baseDir, filepath.FromSlash(root))

	info, err := os.Stat(full)
	if err != nil {
		slog.Warn("skipping root",
			slog.String("root", root),
			slog.Any("error", err),
		)

		return files
	}

	if !info.IsDir() {
		return s.addCandidate(root, full, seen, files)
	}

	err = filepath.WalkDir(full, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("skipping unreadable entry",
				slog.String("path", p),
				slog.Any("error", err),
			)

			return nil
		}

		rel, relErr := filepath.Rel(s.baseDir, p)
		if relErr != nil {
			return nil
		}

		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && s.pathExcluded(rel) {
				return fs.SkipDir
			}

			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		files = s.addCandidate(rel, p, seen, files)

		return nil
	})
	if err != nil {
		slog.Warn("walk aborted",
			slog.String("root", root),
			slog.Any("error", err),
		)
	}

	return files
}

func (s *Selector) addCandidate(rel, full string, seen map[string]struct{}, files []File) []File {
	if s.pathExcluded(rel) {
		return files
	}

	if !s.typeAllowed(extension(rel)) {
		return files
	}

	if _, ok := seen[rel]; ok {
		return files
	}

	seen[rel] = struct{}{}

	return append(files, File{Path: rel, AbsPath: full})
}

// pathExcluded reports whether rel matches any excluded_paths pattern, either
// exactly, as a component prefix, or as a glob over the path or any ancestor
// directory. Exclusion takes precedence over inclusion.
func (s *Selector) pathExcluded(rel string) bool {
	for _, ex := range s.exclusions {
		if rel == ex.pattern || strings.HasPrefix(rel, ex.pattern+"/") {
			return true
		}

		if ex.g == nil {
			continue
		}

		for p := rel; p != "." && p != "/"; p = path.Dir(p) {
			if ex.g.Match(p) {
				return true
			}
		}
	}

	return false
}

// typeAllowed applies the type predicate: included_types restricts when
// non-empty, and excluded_types always applies.
func (s *Selector) typeAllowed(ext string) bool {
	if len(s.includedTypes) > 0 {
		if _, ok := s.includedTypes[ext]; !ok {
			return false
		}
	}

	_, excluded := s.excludedTypes[ext]

	return !excluded
}

// extension returns the substring after the last dot of the base name, empty
// if the base name has no dot. No leading dot, case preserved.
func extension(rel string) string {
	base := path.Base(rel)

	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return ""
	}

	return base[idx+1:]
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}

	return set
}
