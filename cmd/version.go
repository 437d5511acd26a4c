package cmd

import (
	"fmt"

	"github.com/braindrive/chat-plugin/internal/braindrivechat"
	"github.com/braindrive/chat-plugin/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("braindrive-chat %s\n", version.Version)
		fmt.Printf("  plugin: %s %s\n", braindrivechat.Slug, braindrivechat.Version)
		if version.GitCommit != "" {
			fmt.Printf("  commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Printf("  built:  %s\n", version.BuildDate)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
