// Package cli provides the Cobra-based unitylink command line: apply,
// status, config and version.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/expo-unity/unitylink/internal/build"
	"github.com/expo-unity/unitylink/internal/config"
	clierrors "github.com/expo-unity/unitylink/internal/errors"
	"github.com/expo-unity/unitylink/internal/git"
)

// Execute runs unitylink with the process arguments and exits.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// Run executes the CLI with args and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &rootOptions{opener: &git.DefaultOpener{}}
	cmd := newRootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	reportError(stderr, err, opts.noColor)
	return ExitCode(err)
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unitylink",
		Short: "Configure an Expo iOS project to embed Unity as a Library",
		Long: `unitylink prepares the native iOS project of an Expo app to host a Unity
as a Library export: it patches the build settings of every build
configuration and links, embeds and signs UnityFramework.framework.

It is safe to run repeatedly, for example after every 'expo prebuild'.`,
		Example: `  # Patch the project and register the framework
  unitylink apply

  # Check a project in CI
  unitylink status --format json`,
		Version:       build.Current().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := getBaseLogger(cmd)
			if err != nil {
				return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
					"Use --loglevel debug|info|warn|error and --logformat text|json")
			}
			cmd.SetContext(slogctx.NewCtx(cmd.Context(), logger))
			return nil
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), c.UseLine(),
			"Run '"+c.CommandPath()+" --help' for usage")
	})

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to config file (default <root>/.unitylink.json)")
	flags.StringVar(&opts.root, "root", "", "Expo project root (default: enclosing git worktree or working directory)")
	flags.StringVarP(&opts.project, "project", "p", "", "Path to project.pbxproj or the .xcodeproj directory")
	flags.StringVar(&opts.unityPath, "unity-path", "", "Directory holding UnityFramework.framework (overrides "+config.EnvUnityPath+")")
	flags.StringVar(&opts.frameworkName, "framework-name", "", "Framework bundle name without extension (default UnityFramework)")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")
	registerLoggingFlags(cmd)

	cmd.AddCommand(
		newApplyCmd(opts),
		newStatusCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)
	return cmd
}

// noArgs rejects positional arguments with an Argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	}
	return nil
}
