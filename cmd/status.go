package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/braindrive/chat-plugin/internal/lifecycle"
	"github.com/braindrive/chat-plugin/internal/tui"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a user's installation status",
	Long: `Look up the user's plugin record and report whether the plugin is
installed.

Example:
  braindrive-chat status --user u1`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	addUserFlag(statusCmd)
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	res := env.manager.Status(cmd.Context(), userID, env.db)
	if jsonOutput {
		return printJSON(res, res.Success)
	}
	if !res.Success {
		return errors.New(res.Error)
	}

	meta := env.manager.PluginMetadata()
	state := string(res.State)
	if res.State == lifecycle.StateInstalled {
		state = tui.Success(state)
	}
	fmt.Println(tui.Field(i18n.T("label.plugin", nil), fmt.Sprintf("%s %s", meta.Name, meta.Version)))
	fmt.Println(tui.Field(i18n.T("label.user", nil), userID))
	fmt.Println(tui.Field(i18n.T("label.state", nil), state))

	if info := res.Lookup.Info; info != nil {
		fmt.Println(tui.Field(i18n.T("label.plugin_id", nil), info.ID))
		fmt.Println(tui.Field(i18n.T("label.enabled", nil), fmt.Sprintf("%t", info.Enabled)))
		fmt.Println(tui.Field(i18n.T("label.installed_at", nil), info.CreatedAt.Local().Format(time.RFC3339)))
		fmt.Println(tui.Field(i18n.T("label.path", nil), env.manager.SharedPath()))
	}
	return nil
}
