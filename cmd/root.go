package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/braindrive/chat-plugin/internal/config"
	"github.com/braindrive/chat-plugin/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// errReported marks a failure whose details were already written (JSON mode)
var errReported = errors.New("failure reported")

var (
	verbose    bool
	jsonOutput bool
	pluginsDir string
	dbPath     string

	logger = zerolog.Nop()

	rootCmd = &cobra.Command{
		Use:           "braindrive-chat",
		Short:         "Install and manage the BrainDriveChat plugin",
		SilenceErrors: true,
		SilenceUsage:  true,
		Long: `braindrive-chat installs, updates and removes the BrainDriveChat
plugin for BrainDrive users.

Plugin files are copied once into a shared directory
(<plugins-root>/shared/BrainDriveChat/v<version>) and each user gets
their own plugin and module records in the database.

Commands:
  install    Install the plugin for a user
  uninstall  Remove a user's plugin records
  update     Re-copy plugin files over an existing installation
  status     Show a user's installation status
  health     Inspect the installed files
  info       Show plugin and module metadata
  modules    List or search the plugin's modules
  config     Manage configuration`,
		PersistentPreRunE: setupLogging,
	}
)

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().StringVar(&pluginsDir, "plugins-dir", "", "plugins root directory (env "+config.EnvPluginsDir+")")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path (env "+config.EnvDatabase+")")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlag)
}

// normalizeFlag accepts snake_case spellings and the user-id alias
func normalizeFlag(f *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if name == "user-id" {
		name = "user"
	}
	return pflag.NormalizedName(name)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := config.ParseLogLevel(config.Get().LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	logger = logging.New(os.Stderr, level, jsonOutput)
	logging.Install(logger)
	return nil
}
