package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/pkg/types"
)

func init() {
	rootCmd.AddCommand(newDeleteKeyCmd())
}

func newDeleteKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete-key <path>",
		Short: "Delete a registry key",
		Long: `The delete-key command removes exactly the leaf key at the given path.
It does not recurse; whether a key with sub-keys can be deleted is up to
the provider.

Example:
  regctl delete-key "HKLM\Software\Vendor\App\Settings"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeleteKey(args)
		},
	}
	return cmd
}

func runDeleteKey(args []string) error {
	hive, path, err := types.SplitPath(args[0])
	if err != nil {
		return err
	}

	client, done, err := newClient()
	if err != nil {
		return err
	}
	defer done()

	if err := client.DeleteKey(hive, path); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"hive":    hive.String(),
			"path":    path,
			"success": true,
		})
	}
	printInfo("Deleted %s\\%s\n", hive, path)
	return nil
}
