package cmd

import (
	"fmt"
	"strings"

	"github.com/braindrive/chat-plugin/internal/braindrivechat"
	"github.com/braindrive/chat-plugin/internal/i18n"
	"github.com/braindrive/chat-plugin/internal/search"
	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules [query]",
	Short: "List or search the plugin's modules",
	Long: `List the modules the plugin registers, or fuzzy-search them by name,
display name, description, tags and category.

Example:
  braindrive-chat modules
  braindrive-chat modules chat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runModules,
}

func init() {
	rootCmd.AddCommand(modulesCmd)
}

type moduleMatch struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Priority    int      `json:"priority"`
	Tags        []string `json:"tags"`
	Score       int      `json:"score"`
}

func runModules(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	results := search.FuzzySearch(braindrivechat.ModuleDescriptors(), query)

	if jsonOutput {
		out := make([]moduleMatch, len(results))
		for i, r := range results {
			out[i] = moduleMatch{
				Name:        r.Module.Name,
				DisplayName: r.Module.DisplayName,
				Priority:    r.Module.Priority,
				Tags:        r.Module.Tags,
				Score:       r.Score,
			}
		}
		return printJSON(out, true)
	}

	if len(results) == 0 {
		fmt.Println(i18n.T("modules.none", map[string]any{"Query": query}))
		return nil
	}

	fmt.Println(i18n.T("modules.header", map[string]any{"Count": len(results)}, len(results)))
	for _, r := range results {
		fmt.Printf("  %-20s %s\n", r.Module.Name, r.Module.DisplayName)
		if len(r.Module.Tags) > 0 {
			fmt.Printf("  %-20s [%s]\n", "", strings.Join(r.Module.Tags, ", "))
		}
	}
	return nil
}
