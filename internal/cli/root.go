package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kat-cli/kat/pkg/log"
	"github.com/kat-cli/kat/pkg/profile"
)

const (
	cmdName = "kat"
	cmdDesc = `Concatenate files selected by declarative profiles.`

	cmdExamples = `  # Concatenate files selected by the "rat" profile:
  kat rat

  # Run the same profile against another checkout:
  kat rat ./other-checkout

  # Print the selected paths without contents:
  kat rat --list

  # Override the profile's type filter for one run:
  kat rat --included-types go,md`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "warn", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

// NewRootCmd discovers the profile registry and builds the CLI surface: one
// subcommand per discovered profile name.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDir(ConfigDir())
}

// NewRootCmdWithDir is [NewRootCmd] with an explicit profile directory.
func NewRootCmdWithDir(configDir string) *cobra.Command {
	args := NewRootArgs()

	registry, regErr := profile.LoadRegistry(configDir)

	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           cmdExamples,
		PersistentPreRunE: setupLogging(args),
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			if len(cmdArgs) > 0 {
				// Only reachable when discovery produced zero subcommands.
				if regErr != nil {
					return fmt.Errorf("profile %q: %w", cmdArgs[0], regErr)
				}

				return fmt.Errorf("%w: %q", profile.ErrUnknownProfile, cmdArgs[0])
			}

			if regErr != nil {
				slog.Debug("profile discovery failed",
					slog.String("dir", configDir),
					slog.Any("error", regErr),
				)
			}

			return cmd.Help()
		},
	}

	args.AddFlags(cmd)

	for _, entry := range registry.Entries() {
		cmd.AddCommand(NewProfileCmd(args, registry, entry))
	}

	bindEnvVars(cmd)

	return cmd
}

// ConfigDir resolves the profile directory: $KAT_CONFIG_DIR when set,
// otherwise the user configuration home under a kat subdirectory.
func ConfigDir() string {
	if dir, ok := os.LookupEnv("KAT_CONFIG_DIR"); ok && dir != "" {
		return dir
	}

	return profile.DefaultDir()
}

func setupLogging(rc *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), rc.LogLevel, rc.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		slog.SetDefault(slog.New(logHandler))

		return nil
	}
}
