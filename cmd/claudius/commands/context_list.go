package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/claudius/internal/rules"
)

var listTree bool

func init() {
	contextListCmd.Flags().BoolVar(&listTree, "tree", false,
		"render the rules as a directory tree")
	contextCmd.AddCommand(contextListCmd)
}

var contextListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available rules",
	Long: `List the Markdown rules in the claudius rules directory,
including rules in subdirectories.`,
	Example: `  # List rules as a flat list
  claudius context list

  # Render the rules directory as a tree
  claudius context list --tree

  See Also: claudius context append, claudius context install`,
	RunE: runContextList,
}

func runContextList(cmd *cobra.Command, _ []string) error {
	dir, err := rules.EnsureDir()
	if err != nil {
		return err
	}
	list, err := rules.List(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintf(out, "No rules found in %s\n", dir)
		return nil
	}

	fmt.Fprintf(out, "Rules directory: %s\n", dir)

	if listTree {
		names := make([]string, len(list))
		for i, rule := range list {
			names[i] = rule.Name
		}
		fmt.Fprint(out, rules.RenderTree(names))
		return nil
	}

	fmt.Fprintf(out, "Available rules (%d):\n", len(list))
	for _, rule := range list {
		if rule.Description != "" {
			fmt.Fprintf(out, "  - %s: %s\n", rule.Name, rule.Description)
		} else {
			fmt.Fprintf(out, "  - %s\n", rule.Name)
		}
	}
	return nil
}
