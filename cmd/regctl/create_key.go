package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/pkg/types"
)

func init() {
	rootCmd.AddCommand(newCreateKeyCmd())
}

func newCreateKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-key <path>",
		Short: "Create a registry key",
		Long: `The create-key command creates a key and every missing intermediate
key along the path. Creating a key that already exists succeeds.

Example:
  regctl create-key "HKLM\Software\Vendor\App\Settings"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateKey(args)
		},
	}
	return cmd
}

func runCreateKey(args []string) error {
	hive, path, err := types.SplitPath(args[0])
	if err != nil {
		return err
	}

	client, done, err := newClient()
	if err != nil {
		return err
	}
	defer done()

	if err := client.CreateKey(hive, path); err != nil {
		return fmt.Errorf("failed to create key: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"hive":    hive.String(),
			"path":    path,
			"success": true,
		})
	}
	printInfo("Created %s\\%s\n", hive, path)
	return nil
}
