package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/braindrive/chat-plugin/internal/config"
	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/braindrive/chat-plugin/internal/lifecycle"
	"github.com/braindrive/chat-plugin/internal/store"
	"github.com/braindrive/chat-plugin/internal/tui"
	"github.com/spf13/cobra"
)

var (
	installSource string
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the plugin for a user",
	Long: `Create the user's plugin and module records, copy the plugin files
into the shared directory and validate the result.

The source directory must contain a built plugin (package.json and
dist/remoteEntry.js). It defaults to the current directory.

Example:
  braindrive-chat install --user u1
  braindrive-chat install -u u1 --source ./BrainDriveChat --json`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	addUserFlag(installCmd)
	installCmd.Flags().StringVarP(&installSource, "source", "s", "", "plugin source directory (default: current directory)")
	rootCmd.AddCommand(installCmd)
}

func sourceDir(flag string) string {
	if flag != "" {
		return flag
	}
	return config.DefaultSourceDir()
}

func runInstall(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}

	env, err := openEnvironment()
	if err != nil {
		return err
	}
	defer env.Close()

	meta := env.manager.PluginMetadata()
	if !jsonOutput {
		fmt.Println(i18n.T("install.start", map[string]any{"Plugin": meta.Name, "User": userID}))
	}

	res := env.manager.InstallForUser(cmd.Context(), userID, env.db, sourceDir(installSource))
	if jsonOutput {
		return printJSON(res, res.Success)
	}
	if !res.Success {
		return errors.New(i18n.T("install.failed", map[string]any{"Error": res.Error}))
	}

	fmt.Println(tui.Success(i18n.T("install.success", map[string]any{
		"Plugin":  meta.Name,
		"Version": meta.Version,
		"User":    userID,
	})))
	printInstallDetails(res)
	return nil
}

func printInstallDetails(res lifecycle.InstallResult) {
	fmt.Println(tui.Field(i18n.T("label.plugin_id", nil), res.PluginID))
	if len(res.ModulesCreated) > 0 {
		fmt.Println(tui.Field(i18n.T("label.modules", nil), moduleNames(res.ModulesCreated)))
	}
	fmt.Println(tui.Field(i18n.T("label.files", nil), i18n.T("files.count", map[string]any{"Count": len(res.CopiedFiles)}, len(res.CopiedFiles))))
	fmt.Println(tui.Field(i18n.T("label.path", nil), res.InstallPath))
}

func moduleNames(refs []store.ModuleRef) string {
	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = r.Name
	}
	return strings.Join(names, ", ")
}
