package cmd

import (
	"fmt"

	"github.com/braindrive/chat-plugin/internal/config"
	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage braindrive-chat configuration",
	Long: `Manage braindrive-chat configuration settings.

Example:
  braindrive-chat config show
  braindrive-chat config set pluginsRoot /srv/braindrive/plugins`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value.

Available keys:
  locale        - Language setting
                  Values: auto, en-US, ko-KR, etc.
  pluginsRoot   - Directory plugins are installed under
  databasePath  - sqlite database file
  logLevel      - Log level
                  Values: debug, info, warn, error

Example:
  braindrive-chat config set locale ko-KR
  braindrive-chat config set logLevel debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	settings, err := cfg.Resolve(pluginsDir, dbPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{
			"file":      cfg,
			"path":      config.ConfigPath(),
			"effective": map[string]string{"pluginsRoot": settings.PluginsRoot, "databasePath": settings.DatabasePath, "logLevel": settings.LogLevel.String()},
		}, true)
	}

	fmt.Println("Configuration:")
	fmt.Println("----------------------------------------")
	fmt.Printf("  file:         %s\n", config.ConfigPath())
	fmt.Printf("  locale:       %s\n", cfg.Locale)
	fmt.Printf("  pluginsRoot:  %s\n", orDefault(cfg.PluginsRoot))
	fmt.Printf("  databasePath: %s\n", orDefault(cfg.DatabasePath))
	fmt.Printf("  logLevel:     %s\n", cfg.LogLevel)

	fmt.Println()
	fmt.Println("Effective:")
	fmt.Printf("  pluginsRoot:  %s\n", settings.PluginsRoot)
	fmt.Printf("  databasePath: %s\n", settings.DatabasePath)

	fmt.Println()
	fmt.Println("Locale:")
	if cfg.Locale == "auto" {
		fmt.Println("  auto: System locale is auto-detected")
	} else {
		fmt.Printf("  %s: Using fixed locale\n", cfg.Locale)
	}

	return nil
}

func orDefault(v string) string {
	if v == "" {
		return "(default)"
	}
	return v
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	var err error
	switch key {
	case "locale":
		err = config.SetLocale(value)
		if err == nil {
			i18n.SetLocale(value)
		}
	case "pluginsRoot":
		err = config.SetPluginsRoot(value)
	case "databasePath":
		err = config.SetDatabasePath(value)
	case "logLevel":
		err = config.SetLogLevel(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	if err != nil {
		return err
	}

	fmt.Println(i18n.T("config.set", map[string]any{"Key": key, "Value": value}))
	return nil
}
