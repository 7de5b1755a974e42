package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrConfigDirMissing is returned when the configuration directory does
	// not exist. It is fatal only when a specific profile is requested.
	ErrConfigDirMissing = errors.New("config directory not found")

	// ErrDuplicateProfile is returned when two configuration files would
	// yield the same profile name.
	ErrDuplicateProfile = errors.New("duplicate profile")

	// ErrUnknownProfile is returned when a requested profile has no backing
	// configuration file.
	ErrUnknownProfile = errors.New("unknown profile")
)

// Entry is one discovered profile. A load failure is recorded rather than
// dropped, so the subcommand for this name can report it.
type Entry struct {
	Profile *Profile
	Err     error
	Name    string
	Path    string
}

// Registry maps profile names to loaded profiles.
type Registry struct {
	entries map[string]*Entry
}

// DefaultDir returns the profile directory: $XDG_CONFIG_HOME/kat, falling
// back to ~/.config/kat, and finally to a temp directory.
func DefaultDir() string {
	if xdgHome, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok && xdgHome != "" {
		return filepath.Join(xdgHome, "kat")
	}

	usrHome, err := os.UserHomeDir()
	if err == nil && usrHome != "" {
		return filepath.Join(usrHome, ".config", "kat")
	}

	tmpPath := filepath.Join(os.TempDir(), "kat")

	slog.Warn("could not determine user config directory, using temp path",
		slog.String("path", tmpPath),
		slog.Any("error", fmt.Errorf("$XDG_CONFIG_HOME is unset, fall back to home directory: %w", err)),
	)

	return tmpPath
}

// LoadRegistry scans dir for profile documents (*.yml, *.yaml) and decodes
// each one. Per-file failures are recorded on the entry instead of aborting
// discovery, so one malformed profile does not hide the others.
//
// A missing directory returns an empty registry together with
// [ErrConfigDirMissing]; callers decide whether that is fatal.
func LoadRegistry(dir string) (*Registry, error) {
	r := &Registry{entries: map[string]*Entry{}}

	dirEntries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return r, fmt.Errorf("%w: %s", ErrConfigDirMissing, dir)
	}
	if err != nil {
		return r, fmt.Errorf("read config directory %s: %w", dir, err)
	}

	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}

		fileName := dirEntry.Name()

		ext := filepath.Ext(fileName)
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		name := strings.TrimSuffix(fileName, ext)
		path := filepath.Join(dir, fileName)

		if prev, ok := r.entries[name]; ok {
			prev.Profile = nil
			prev.Err = fmt.Errorf("%w: %q is defined by both %s and %s",
				ErrDuplicateProfile, name, prev.Path, path)

			continue
		}

		r.entries[name] = loadEntry(path, name)
	}

	return r, nil
}

func loadEntry(path, name string) *Entry {
	e := &Entry{
		Name: name,
		Path: path,
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		e.Err = fmt.Errorf("read profile %s: %w", path, err)

		return e
	}

	p, err := Parse(data, name)
	if err != nil {
		e.Err = fmt.Errorf("profile %q (%s): %w", name, path, err)

		return e
	}

	e.Profile = p

	return e
}

// Get returns the profile for name. It returns the recorded load error for
// entries that were discovered but failed to decode, and [ErrUnknownProfile]
// for names that were never discovered.
func (r *Registry) Get(name string) (*Profile, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	if e.Err != nil {
		return nil, e.Err
	}

	return e.Profile, nil
}

// Names returns all discovered profile names in sorted order, including names
// whose documents failed to load.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Entries returns all entries, ordered by name.
func (r *Registry) Entries() []*Entry {
	entries := make([]*Entry, 0, len(r.entries))
	for _, name := range r.Names() {
		entries = append(entries, r.entries[name])
	}

	return entries
}

// Len returns the number of discovered profiles.
func (r *Registry) Len() int {
	return len(r.entries)
}
