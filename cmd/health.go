package cmd

import (
	"fmt"

	"github.com/braindrive/chat-plugin/internal/tui"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Inspect the installed plugin files",
	Long: `Check the shared plugin directory without modifying it: bundle
present and non-empty, package.json parses, assets and chat components
present. Exits non-zero when the installation is unhealthy.

Example:
  braindrive-chat health --user u1`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	addUserFlag(healthCmd)
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	env, err := newEnvironment()
	if err != nil {
		return err
	}

	res := env.manager.Health(cmd.Context(), userID)
	if jsonOutput {
		return printJSON(res, res.Success)
	}

	fmt.Println(tui.HealthReport(res.InstallPath, res.Report))
	if !res.Success {
		return errReported
	}
	return nil
}
