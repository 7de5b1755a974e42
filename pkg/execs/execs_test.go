package execs_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kat-cli/kat/pkg/execs"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		wantCommand string
		wantArgs    []string
		wantErr     error
	}{
		"bare command": {
			input:       "bat",
			wantCommand: "bat",
		},
		"command with flags": {
			input:       "bat --paging=never --style plain",
			wantCommand: "bat",
			wantArgs:    []string{"--paging=never", "--style", "plain"},
		},
		"quoted argument": {
			input:       `less -P "kat pager"`,
			wantCommand: "less",
			wantArgs:    []string{"-P", "kat pager"},
		},
		"empty string": {
			input:   "",
			wantErr: execs.ErrEmptyCommand,
		},
		"whitespace only": {
			input:   "   ",
			wantErr: execs.ErrEmptyCommand,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd, err := execs.Parse(tc.input)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantCommand, cmd.Command)
			assert.Equal(t, tc.wantArgs, cmd.Args)
		})
	}
}

func TestCommand_Available(t *testing.T) {
	t.Parallel()

	assert.True(t, execs.NewCommand("sh").Available())
	assert.False(t, execs.NewCommand("definitely-not-a-real-program").Available())
	assert.False(t, execs.Command{}.Available())
}

func TestCommand_ExecStream(t *testing.T) {
	t.Parallel()

	sb := &strings.Builder{}
	cmd := execs.NewCommand("sh", "-c")

	err := cmd.ExecStream(t.Context(), sb, "printf hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", sb.String())
}

func TestCommand_ExecStream_Failure(t *testing.T) {
	t.Parallel()

	sb := &strings.Builder{}
	cmd := execs.NewCommand("sh", "-c", "echo oops >&2; exit 3")

	err := cmd.ExecStream(t.Context(), sb)
	require.ErrorIs(t, err, execs.ErrCommandExecution)
	assert.Contains(t, err.Error(), "oops")
}

func TestCommand_ExecStream_Empty(t *testing.T) {
	t.Parallel()

	err := execs.Command{}.ExecStream(context.Background(), &strings.Builder{})
	require.ErrorIs(t, err, execs.ErrEmptyCommand)
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bat", execs.NewCommand("bat").String())
	assert.Equal(t, "bat --paging=never", execs.NewCommand("bat", "--paging=never").String())
}
