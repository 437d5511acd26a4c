package cmd

import (
	"errors"
	"fmt"

	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/braindrive/chat-plugin/internal/tui"
	"github.com/spf13/cobra"
)

var (
	uninstallYes bool
)

var uninstallCmd = &cobra.Command{
	Use:     "uninstall",
	Aliases: []string{"remove", "rm"},
	Short:   "Remove a user's plugin records",
	Long: `Delete the user's plugin record and all of its module records.
Files in the shared plugin directory are left in place because other
users may still have the plugin installed.

Example:
  braindrive-chat uninstall --user u1
  braindrive-chat uninstall -u u1 --yes`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	addUserFlag(uninstallCmd)
	uninstallCmd.Flags().BoolVarP(&uninstallYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	meta := env.manager.PluginMetadata()

	// Only prompt when there is something to remove
	if !uninstallYes && !jsonOutput {
		st := env.manager.Status(cmd.Context(), userID, env.db)
		if st.Success && st.Lookup.Exists {
			ok, err := tui.RunUninstallConfirm(meta.Slug, userID)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(i18n.T("uninstall.cancelled", nil))
				return nil
			}
		}
	}

	res := env.manager.UninstallForUser(cmd.Context(), userID, env.db)
	if jsonOutput {
		return printJSON(res, res.Success)
	}
	if !res.Success {
		return errors.New(i18n.T("uninstall.failed", map[string]any{"Error": res.Error}))
	}

	fmt.Println(tui.Success(i18n.T("uninstall.success", map[string]any{"Plugin": meta.Name, "User": userID})))
	fmt.Println(tui.Field(i18n.T("label.plugin_id", nil), res.PluginID))
	fmt.Println(tui.Field(i18n.T("label.modules", nil), moduleNames(res.DeletedModules)))
	return nil
}
