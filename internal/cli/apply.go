package cli

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"

	clierrors "github.com/expo-unity/unitylink/internal/errors"
	"github.com/expo-unity/unitylink/internal/framework"
	"github.com/expo-unity/unitylink/internal/transform"
)

func newApplyCmd(opts *rootOptions) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Configure the Xcode project to embed Unity as a Library",
		Long: `Patch every build configuration of the iOS project and register
UnityFramework.framework for linking and embedding.

For each build configuration with build settings:
  ENABLE_BITCODE               NO
  CLANG_CXX_LANGUAGE_STANDARD  "c++17"
  FRAMEWORK_SEARCH_PATHS       the Unity path, prepended once

The framework is registered only when it exists at <unity path>/UnityFramework.framework.
Running apply again after the Unity export completes picks it up.

The Unity path is taken from --unity-path, then EXPO_UNITY_PATH, then the
config file, then $(PROJECT_DIR)/unity/builds/ios.`,
		Example: `  # Configure the project found under ./ios
  unitylink apply

  # Show what would change without writing
  unitylink apply --dry-run

  # Use a Unity export outside the project
  EXPO_UNITY_PATH=/builds/unity/ios unitylink apply`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			env, err := opts.resolve(ctx)
			if err != nil {
				return err
			}
			proj, err := loadProject(env.Project)
			if err != nil {
				return err
			}

			before, err := proj.Bytes()
			if err != nil {
				return clierrors.ProjectParseError(env.Project, err)
			}
			res, err := transform.Apply(ctx, proj, env.transformOptions(proj))
			if err != nil {
				return projectError(env.Project, err)
			}
			after, err := proj.Bytes()
			if err != nil {
				return clierrors.ProjectParseError(env.Project, err)
			}

			p := newPrinter(cmd.OutOrStdout(), opts.noColor)
			printApplyResult(p, env, res)

			shown := env.displayPath(env.Project)
			switch {
			case bytes.Equal(before, after):
				p.success("%s is already configured\n", shown)
			case dryRun:
				p.warn("Dry run: %s was not written\n", shown)
			default:
				if err := proj.Save(); err != nil {
					return clierrors.ProjectWriteError(env.Project, err)
				}
				p.success("Updated %s\n", shown)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report changes without writing the project file")
	return cmd
}

func printApplyResult(p *printer, env *environment, res *transform.Result) {
	p.printf("%s %s (%s)\n", p.label("Unity path:"), env.Config.UnityPath, env.Config.UnityPathSource)

	for _, c := range res.Configurations {
		switch {
		case c.Skipped:
			p.printf("  %-12s skipped (no build settings)\n", c.Name)
		case len(c.Changes) == 0:
			p.printf("  %-12s unchanged\n", c.Name)
		default:
			keys := make([]string, 0, len(c.Changes))
			for _, ch := range c.Changes {
				keys = append(keys, ch.Key)
			}
			p.printf("  %-12s %s\n", c.Name, strings.Join(keys, ", "))
		}
	}

	switch res.Framework {
	case framework.Registered:
		p.printf("%s %s embedded and signed\n", p.label("Framework:"), res.Artifact.Reference)
	case framework.NotBuilt:
		p.warn("%s not built yet at %s; run the Unity iOS export, then apply again\n",
			res.Artifact.Name, res.Artifact.Location)
	}
}
