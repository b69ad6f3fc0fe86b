package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/pkg/types"
)

func init() {
	rootCmd.AddCommand(newDeleteValueCmd())
}

func newDeleteValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-value <path> <name>",
		Short: "Delete a registry value",
		Long: `The delete-value command removes one named value from a key. Use an
empty name for the key's default value.

Example:
  regctl delete-value "HKLM\Software\Vendor\App" "ObsoleteFlag"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteValue(args)
		},
	}
	return cmd
}

func runDeleteValue(args []string) error {
	hive, path, err := types.SplitPath(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	client, done, err := newClient()
	if err != nil {
		return err
	}
	defer done()

	if err := client.DeleteValue(hive, path, name); err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"hive":    hive.String(),
			"path":    path,
			"name":    name,
			"success": true,
		})
	}
	printInfo("Deleted value %q\n", name)
	return nil
}
