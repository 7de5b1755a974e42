package execs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	shellwords "github.com/mattn/go-shellwords"
)

var (
	// ErrCommandExecution is returned when command execution fails.
	ErrCommandExecution = errors.New("run")

	// ErrEmptyCommand is returned when a command is empty.
	ErrEmptyCommand = errors.New("empty command")
)

// Command describes an invocation of an external program.
type Command struct {
	// Command is the program to execute.
	Command string
	// Args contains the command line arguments.
	Args []string
}

// NewCommand creates a new [Command].
func NewCommand(name string, args ...string) Command {
	return Command{
		Command: name,
		Args:    args,
	}
}

// Parse splits a shell-style command string into a [Command].
func Parse(s string) (Command, error) {
	words, err := shellwords.Parse(s)
	if err != nil {
		return Command{}, fmt.Errorf("parse command %q: %w", s, err)
	}
	if len(words) == 0 {
		return Command{}, ErrEmptyCommand
	}

	return NewCommand(words[0], words[1:]...), nil
}

// Available reports whether the program can be resolved on the execution path.
func (c Command) Available() bool {
	if c.Command == "" {
		return false
	}

	_, err := exec.LookPath(c.Command)

	return err == nil
}

// ExecStream runs the command with extraArgs appended, streaming its stdout to
// w. Stderr is captured and included in the returned error. It blocks until
// the subprocess exits.
func (c Command) ExecStream(ctx context.Context, w io.Writer, extraArgs ...string) error {
	if c.Command == "" {
		return ErrEmptyCommand
	}

	allArgs := append([]string{}, c.Args...)
	allArgs = append(allArgs, extraArgs...)

	start := time.Now()

	//nolint:gosec // G204: Subprocess launched with a potential tainted input or cmd arguments.
	cmd := exec.CommandContext(ctx, c.Command, allArgs...)
	cmd.Env = os.Environ()
	cmd.Stdout = w

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		slog.DebugContext(ctx, "command failed",
			slog.String("command", c.String()),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		if stderr.Len() > 0 {
			return fmt.Errorf("%w: %w: %s", ErrCommandExecution, err, strings.TrimSpace(stderr.String()))
		}

		return fmt.Errorf("%w: %w", ErrCommandExecution, err)
	}

	slog.DebugContext(ctx, "command executed successfully",
		slog.String("command", c.String()),
		slog.Duration("duration", time.Since(start)),
	)

	return nil
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}

	return fmt.Sprintf("%s %s", c.Command, strings.Join(c.Args, " "))
}
