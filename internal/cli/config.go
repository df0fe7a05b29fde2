package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/expo-unity/unitylink/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show every configuration key with its resolved value, and where the
Unity path came from (option, environment, config file or default).

Config file keys (.unitylink.json):` + configKeysHelp(),
		Args: noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.resolveConfig(cmd.Context())
			if err != nil {
				return err
			}
			printConfig(newPrinter(cmd.OutOrStdout(), opts.noColor), env)
			return nil
		},
	}
}

func printConfig(p *printer, env *environment) {
	fileState := ""
	if _, err := os.Stat(env.ConfigPath); err != nil {
		fileState = " (not found)"
	}
	p.printf("%s %s%s\n", p.label("Config file: "), env.ConfigPath, fileState)
	p.printf("%s %s\n\n", p.label("Project root:"), env.Root)

	values := map[string]string{
		"unity_path":     env.Config.UnityPath,
		"project_file":   env.Config.ProjectFile,
		"project_root":   env.Config.ProjectRoot,
		"framework_name": env.Config.FrameworkName,
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"Key", "Value", "Source", "Env"})
	for _, key := range config.SortedKeys() {
		schema := config.KnownKeys[key]
		source := ""
		if key == "unity_path" {
			source = env.Config.UnityPathSource.String()
		}
		value := values[key]
		if value == "" {
			value = "-"
		}
		t.AppendRow(table.Row{key, value, source, schema.Env})
	}
	style := table.StyleLight
	style.Options.DrawBorder = false
	t.SetStyle(style)
	t.Render()
}

// configKeysHelp renders the key descriptions appended to the config help.
func configKeysHelp() string {
	s := ""
	for _, key := range config.SortedKeys() {
		schema := config.KnownKeys[key]
		s += fmt.Sprintf("\n  %-15s %s", key, schema.Description)
		if schema.Default != "" {
			s += fmt.Sprintf(" (default %s)", schema.Default)
		}
	}
	return s
}
