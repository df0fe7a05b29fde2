package cli

import (
	"github.com/spf13/cobra"

	"github.com/expo-unity/unitylink/internal/build"
)

func newVersionCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display version, commit, build date, Go version and platform for unitylink",
		Example: `  unitylink version
  unitylink version --format json`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(cmd.CommandPath(), format); err != nil {
				return err
			}
			info := build.Current()
			if format != FormatText {
				return writeStructured(cmd.OutOrStdout(), format, info)
			}

			p := newPrinter(cmd.OutOrStdout(), opts.noColor)
			p.printf("unitylink %s\n", info.Version)
			p.printf("commit: %s\n", info.Commit)
			p.printf("built: %s\n", info.BuildDate)
			p.printf("go: %s\n", info.GoVersion)
			p.printf("platform: %s\n", info.Platform)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", FormatText, "Output format (text, json, yaml)")
	return cmd
}
