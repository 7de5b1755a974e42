package profile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kat-cli/kat/pkg/yaml"
)

var (
	// ErrConfigParse is returned when a profile document cannot be decoded.
	ErrConfigParse = errors.New("parse profile")

	// ErrInvalidProfileName is returned when a file would yield a profile name
	// that cannot be used as a subcommand token.
	ErrInvalidProfileName = errors.New("invalid profile name")
)

// Profile is one named configuration describing which files its subcommand
// selects. All fields are optional and default to empty. Unknown keys in the
// document are ignored.
type Profile struct {
	name string

	// About is a short description of the profile, shown in help output.
	About string `json:"about,omitempty" jsonschema:"title=About"`
	// IncludedPaths lists path patterns eligible for selection. Empty means
	// the invocation directory itself.
	IncludedPaths []string `json:"included_paths,omitempty" jsonschema:"title=Included Paths"`
	// ExcludedPaths lists path patterns removed from the included set.
	// Exclusion always takes precedence over inclusion.
	ExcludedPaths []string `json:"excluded_paths,omitempty" jsonschema:"title=Excluded Paths"`
	// IncludedTypes lists file extensions (without the leading dot) that are
	// allowed. Empty means all types.
	IncludedTypes []string `json:"included_types,omitempty" jsonschema:"title=Included Types"`
	// ExcludedTypes lists file extensions removed from the allowed set.
	ExcludedTypes []string `json:"excluded_types,omitempty" jsonschema:"title=Excluded Types"`
}

// New creates an empty [Profile].
func New() *Profile {
	return &Profile{}
}

// Name returns the profile name, derived from its file's base name.
func (p *Profile) Name() string {
	return p.name
}

func (p *Profile) String() string {
	if p.About != "" {
		return p.About
	}

	return fmt.Sprintf("concatenate files selected by the %q profile", p.name)
}

// ValidateName checks that name is usable as a subcommand token.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProfileName)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidProfileName, name)
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidProfileName, name)
	}

	return nil
}

// Parse decodes and validates one profile document. The name is the file's
// base name without extension; it is validated as a subcommand token.
func Parse(data []byte, name string) (*Profile, error) {
	err := ValidateName(name)
	if err != nil {
		return nil, err
	}

	p := New()
	p.name = name

	// An empty document is a valid profile with all sections empty.
	var anyDoc any

	dec := yaml.NewDecoder(bytes.NewReader(data))

	err = dec.Decode(&anyDoc)
	if errors.Is(err, io.EOF) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, yaml.WrapWithSource(err, data))
	}

	err = DefaultValidator.Validate(anyDoc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, yaml.WrapWithSource(err, data))
	}

	dec = yaml.NewDecoder(bytes.NewReader(data))

	err = dec.Decode(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigParse, yaml.WrapWithSource(err, data))
	}

	return p, nil
}
