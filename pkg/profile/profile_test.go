package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kat-cli/kat/pkg/profile"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want    func(t *testing.T, p *profile.Profile)
		wantErr error
		input   string
		name    string
	}{
		"all sections": {
			name: "rat",
			input: `about: rust sources
included_paths:
  - src
excluded_paths:
  - src/generated
included_types:
  - rs
excluded_types:
  - lock
`,
			want: func(t *testing.T, p *profile.Profile) {
				t.Helper()
				assert.Equal(t, "rat", p.Name())
				assert.Equal(t, "rust sources", p.About)
				assert.Equal(t, []string{"src"}, p.IncludedPaths)
				assert.Equal(t, []string{"src/generated"}, p.ExcludedPaths)
				assert.Equal(t, []string{"rs"}, p.IncludedTypes)
				assert.Equal(t, []string{"lock"}, p.ExcludedTypes)
			},
		},
		"empty document": {
			name:  "everything",
			input: "",
			want: func(t *testing.T, p *profile.Profile) {
				t.Helper()
				assert.Empty(t, p.IncludedPaths)
				assert.Empty(t, p.ExcludedPaths)
				assert.Empty(t, p.IncludedTypes)
				assert.Empty(t, p.ExcludedTypes)
			},
		},
		"unknown keys are ignored": {
			name: "docs",
			input: `included_types: [md]
color: true
`,
			want: func(t *testing.T, p *profile.Profile) {
				t.Helper()
				assert.Equal(t, []string{"md"}, p.IncludedTypes)
			},
		},
		"malformed yaml": {
			name:    "bad",
			input:   "included_paths:\n  - a\n - b\n",
			wantErr: profile.ErrConfigParse,
		},
		"wrong section type": {
			name:    "bad",
			input:   "included_paths: src\n",
			wantErr: profile.ErrConfigParse,
		},
		"wrong element type": {
			name:    "bad",
			input:   "included_types:\n  - 10\n",
			wantErr: profile.ErrConfigParse,
		},
		"empty name": {
			name:    "",
			input:   "",
			wantErr: profile.ErrInvalidProfileName,
		},
		"name with separator": {
			name:    "a/b",
			input:   "",
			wantErr: profile.ErrInvalidProfileName,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := profile.Parse([]byte(tc.input), tc.name)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			tc.want(t, p)
		})
	}
}

func TestProfile_String(t *testing.T) {
	t.Parallel()

	p, err := profile.Parse([]byte("about: my stuff\n"), "stuff")
	require.NoError(t, err)
	assert.Equal(t, "my stuff", p.String())

	p, err = profile.Parse(nil, "bare")
	require.NoError(t, err)
	assert.Contains(t, p.String(), `"bare"`)
}
