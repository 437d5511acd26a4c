package cmd

import (
	"errors"
	"fmt"

	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/braindrive/chat-plugin/internal/tui"
	"github.com/spf13/cobra"
)

var (
	updateSource string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-copy plugin files over an existing installation",
	Long: `Replace the files in the shared plugin directory with the ones in the
source directory, then validate the result. The user must already have
the plugin installed; database records are left unchanged.

Example:
  braindrive-chat update --user u1 --source ./BrainDriveChat`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	addUserFlag(updateCmd)
	updateCmd.Flags().StringVarP(&updateSource, "source", "s", "", "plugin source directory (default: current directory)")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	meta := env.manager.PluginMetadata()
	res := env.manager.UpdateForUser(cmd.Context(), userID, env.db, sourceDir(updateSource))
	if jsonOutput {
		return printJSON(res, res.Success)
	}
	if !res.Success {
		return errors.New(i18n.T("update.failed", map[string]any{"Error": res.Error}))
	}

	fmt.Println(tui.Success(i18n.T("update.success", map[string]any{
		"Plugin":  meta.Name,
		"Version": meta.Version,
	})))
	printInstallDetails(res)
	return nil
}
