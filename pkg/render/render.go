package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kat-cli/kat/pkg/execs"
	"github.com/kat-cli/kat/pkg/selector"
)

// ErrRender is returned when one selected file cannot be rendered. It is
// reported per file and never aborts the run.
var ErrRender = errors.New("render")

const (
	// DefaultPager is the preferred pager, invoked in plain non-interactive
	// mode so output is identical whether or not it is paginated downstream.
	DefaultPager = "bat --paging=never"

	// PagerEnv overrides the preferred pager. The value is split shell-style,
	// so it may carry arguments.
	PagerEnv = "KAT_PAGER"
)

// Renderer displays one selected file: a path header, then the contents.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, f selector.File) error
}

// NewRenderer probes the preferred pager once and returns the pager-backed
// renderer when it resolves on the execution path, otherwise the plain dump
// renderer. The choice is made once per process, never per file, so one run
// cannot mix formatting.
func NewRenderer() Renderer {
	cmd, err := pagerCommand()
	if err != nil {
		slog.Warn("invalid pager command, using plain dump",
			slog.String("env", PagerEnv),
			slog.Any("error", err),
		)

		return DumpRenderer{}
	}

	if !cmd.Available() {
		slog.Debug("pager unavailable, using plain dump",
			slog.String("pager", cmd.Command),
		)

		return DumpRenderer{}
	}

	return &PagerRenderer{cmd: cmd}
}

func pagerCommand() (execs.Command, error) {
	if v, ok := os.LookupEnv(PagerEnv); ok && v != "" {
		return execs.Parse(v)
	}

	return execs.Parse(DefaultPager)
}

// PagerRenderer renders file contents through an external pager, spawned once
// per file. The subprocess writes synchronously to w and is waited on before
// the next file is rendered.
type PagerRenderer struct {
	cmd execs.Command
}

// NewPagerRenderer creates a [PagerRenderer] with an explicit pager command.
func NewPagerRenderer(cmd execs.Command) *PagerRenderer {
	return &PagerRenderer{cmd: cmd}
}

func (r *PagerRenderer) Render(ctx context.Context, w io.Writer, f selector.File) error {
	err := checkReadable(f)
	if err != nil {
		return err
	}

	err = writeHeader(w, f.Path)
	if err != nil {
		return err
	}

	err = r.cmd.ExecStream(ctx, w, f.AbsPath)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrRender, f.Path, err)
	}

	return nil
}

func (r *PagerRenderer) String() string {
	return r.cmd.String()
}

// DumpRenderer writes file contents byte-for-byte, the plain-cat equivalent.
type DumpRenderer struct{}

func (DumpRenderer) Render(_ context.Context, w io.Writer, f selector.File) error {
	file, err := os.Open(f.AbsPath)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrRender, f.Path, err)
	}
	defer file.Close() //nolint:errcheck // Read-only handle.

	err = writeHeader(w, f.Path)
	if err != nil {
		return err
	}

	_, err = io.Copy(w, file)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrRender, f.Path, err)
	}

	return nil
}

func (DumpRenderer) String() string {
	return "dump"
}

// checkReadable verifies the file can still be opened, so a file deleted
// between selection and render fails before its header is printed.
func checkReadable(f selector.File) error {
	file, err := os.Open(f.AbsPath)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrRender, f.Path, err)
	}

	return file.Close()
}

func writeHeader(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "--- %s ---\n", path)
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	return nil
}
