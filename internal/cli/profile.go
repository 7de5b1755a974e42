package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kat-cli/kat/pkg/profile"
	"github.com/kat-cli/kat/pkg/render"
	"github.com/kat-cli/kat/pkg/selector"
)

type ProfileArgs struct {
	*RootArgs

	IncludedPaths []string
	ExcludedPaths []string
	IncludedTypes []string
	ExcludedTypes []string
	List          bool
}

func NewProfileArgs(rootArgs *RootArgs) *ProfileArgs {
	return &ProfileArgs{
		RootArgs: rootArgs,
	}
}

func (pa *ProfileArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&pa.List, "list", "l", false, "Print the selected paths, not the contents")
	cmd.Flags().StringSliceVar(&pa.IncludedPaths, "included-paths", nil, "Override the profile's included paths")
	cmd.Flags().StringSliceVar(&pa.ExcludedPaths, "excluded-paths", nil, "Override the profile's excluded paths")
	cmd.Flags().StringSliceVar(&pa.IncludedTypes, "included-types", nil, "Override the profile's included types")
	cmd.Flags().StringSliceVar(&pa.ExcludedTypes, "excluded-types", nil, "Override the profile's excluded types")
}

// applyOverrides returns a copy of p with any list the user set on the
// command line replacing the configured one.
func (pa *ProfileArgs) applyOverrides(cmd *cobra.Command, p *profile.Profile) *profile.Profile {
	out := *p

	if cmd.Flags().Changed("included-paths") {
		out.IncludedPaths = pa.IncludedPaths
	}
	if cmd.Flags().Changed("excluded-paths") {
		out.ExcludedPaths = pa.ExcludedPaths
	}
	if cmd.Flags().Changed("included-types") {
		out.IncludedTypes = pa.IncludedTypes
	}
	if cmd.Flags().Changed("excluded-types") {
		out.ExcludedTypes = pa.ExcludedTypes
	}

	return &out
}

// NewProfileCmd builds the subcommand for one discovered profile name. The
// profile is resolved from the registry again at run time, so load failures
// surface with full context when, and only when, the subcommand is invoked.
func NewProfileCmd(rootArgs *RootArgs, registry *profile.Registry, entry *profile.Entry) *cobra.Command {
	pa := NewProfileArgs(rootArgs)

	short := fmt.Sprintf("profile %q (failed to load)", entry.Name)
	if entry.Profile != nil {
		short = entry.Profile.String()
	}

	cmd := &cobra.Command{
		Use:   entry.Name + " [path]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := registry.Get(entry.Name)
			if err != nil {
				return err
			}

			baseDir := "."
			if len(args) > 0 {
				baseDir = args[0]
			}

			return runProfile(cmd, pa.applyOverrides(cmd, p), baseDir, pa.List)
		},
	}

	pa.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runProfile(cmd *cobra.Command, p *profile.Profile, baseDir string, listOnly bool) error {
	s, err := selector.New(p, baseDir)
	if err != nil {
		return fmt.Errorf("profile %q: %w", p.Name(), err)
	}

	files := s.Select()

	slog.Debug("selection complete",
		slog.String("profile", p.Name()),
		slog.String("dir", baseDir),
		slog.Int("files", len(files)),
	)

	out := cmd.OutOrStdout()

	if listOnly {
		for _, f := range files {
			_, err := fmt.Fprintln(out, f.Path)
			if err != nil {
				return fmt.Errorf("write path: %w", err)
			}
		}

		return nil
	}

	r := render.NewRenderer()
	ctx := cmd.Context()

	for _, f := range files {
		err := r.Render(ctx, out, f)
		if err != nil {
			// Unreadable files are skipped; the run keeps going.
			slog.Warn("skipping file",
				slog.String("path", f.Path),
				slog.Any("error", err),
			)
		}
	}

	return nil
}
