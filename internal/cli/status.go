package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/expo-unity/unitylink/internal/transform"
)

// statusOutput is the structured form of `unitylink status`.
type statusOutput struct {
	Project          string `json:"project" yaml:"project"`
	UnityPathSource  string `json:"unity_path_source" yaml:"unity_path_source"`
	Configured       bool   `json:"configured" yaml:"configured"`
	transform.Report `yaml:",inline"`
}

func newStatusCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the Xcode project is configured for Unity",
		Long: `Inspect the iOS project without modifying it and report, per build
configuration, which settings apply would still change, and whether
UnityFramework is built and registered.

Exits 0 when the project is fully configured and 1 when apply would change it.`,
		Example: `  unitylink status
  unitylink status --format json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(cmd.CommandPath(), format); err != nil {
				return err
			}

			env, err := opts.resolve(cmd.Context())
			if err != nil {
				return err
			}
			proj, err := loadProject(env.Project)
			if err != nil {
				return err
			}
			report, err := transform.Check(proj, env.transformOptions(proj))
			if err != nil {
				return projectError(env.Project, err)
			}

			out := statusOutput{
				Project:         env.Project,
				UnityPathSource: env.Config.UnityPathSource.String(),
				Configured:      report.Configured(),
				Report:          *report,
			}
			if format == FormatText {
				printStatus(newPrinter(cmd.OutOrStdout(), opts.noColor), env, out)
			} else if err := writeStructured(cmd.OutOrStdout(), format, out); err != nil {
				return err
			}

			if !out.Configured {
				return NewExitError(ExitFailure)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", FormatText, "Output format (text, json, yaml)")
	return cmd
}

func printStatus(p *printer, env *environment, out statusOutput) {
	p.printf("%s %s\n", p.label("Project:   "), env.displayPath(out.Project))
	p.printf("%s %s (%s)\n", p.label("Unity path:"), out.UnityPath, out.UnityPathSource)

	built := "not built"
	if out.FrameworkBuilt {
		built = "built"
	}
	registered := ""
	if out.Registered != nil {
		registered = ", not registered"
		if *out.Registered {
			registered = ", registered"
		}
	}
	p.printf("%s %s (%s%s)\n", p.label("Framework: "), out.FrameworkPath, built, registered)

	p.printf("%s\n", p.label("Configurations:"))
	for _, c := range out.Configurations {
		switch {
		case c.Skipped:
			p.printf("  %-12s skipped (no build settings)\n", c.Name)
		case len(c.Pending) == 0:
			p.printf("  %-12s ok\n", c.Name)
		default:
			p.printf("  %-12s pending: %s\n", c.Name, strings.Join(c.Pending, ", "))
		}
	}

	if out.Configured {
		p.success("Configured\n")
		return
	}
	p.warn("Not configured; run 'unitylink apply'\n")
}
