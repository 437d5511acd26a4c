package cmd

import (
	"fmt"
	"strings"

	"github.com/braindrive/chat-plugin/internal/descriptor"
	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/braindrive/chat-plugin/internal/tui"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:     "info",
	Aliases: []string{"test"},
	Short:   "Show plugin and module metadata",
	Long: `Print the plugin descriptor and every module descriptor this
installer would write, along with the shared install path.

Example:
  braindrive-chat info
  braindrive-chat info --json`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

type infoOutput struct {
	InstanceID string              `json:"instance_id"`
	SharedPath string              `json:"shared_path"`
	Plugin     descriptor.Plugin   `json:"plugin"`
	Modules    []descriptor.Module `json:"modules"`
}

func runInfo(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	meta := env.manager.PluginMetadata()
	modules := env.manager.ModuleMetadata()

	if jsonOutput {
		return printJSON(infoOutput{
			InstanceID: env.manager.InstanceID(),
			SharedPath: env.manager.SharedPath(),
			Plugin:     meta,
			Modules:    modules,
		}, true)
	}

	fmt.Println(i18n.T("info.header", map[string]any{"Plugin": meta.Name}))
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println(tui.Field(i18n.T("label.plugin", nil), meta.Name))
	fmt.Println(tui.Field(i18n.T("label.version", nil), meta.Version))
	fmt.Println(tui.Field(i18n.T("label.description", nil), meta.Description))
	fmt.Println(tui.Field(i18n.T("label.instance", nil), env.manager.InstanceID()))
	fmt.Println(tui.Field(i18n.T("label.path", nil), env.manager.SharedPath()))
	fmt.Println(tui.Field(i18n.T("label.modules", nil), fmt.Sprintf("%d", len(modules))))

	for i, m := range modules {
		fmt.Println()
		fmt.Println(i18n.T("info.module", map[string]any{"Index": i + 1}))
		fmt.Println(tui.Field(i18n.T("label.name", nil), m.Name))
		fmt.Println(tui.Field(i18n.T("label.display_name", nil), m.DisplayName))
		fmt.Println(tui.Field(i18n.T("label.description", nil), m.Description))
	}
	return nil
}
