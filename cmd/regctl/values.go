package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/pkg/types"
)

func init() {
	rootCmd.AddCommand(newValuesCmd())
}

func newValuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values <path>",
		Short: "List named values and their types at a given path",
		Long: `The values command enumerates the named values of a registry key and
the registry type of each. The empty name denotes the key's default value.

Example:
  regctl values "HKLM\Software\Microsoft\Windows NT\CurrentVersion"
  regctl values "HKCU\Environment" --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValues(args)
		},
	}
	return cmd
}

func runValues(args []string) error {
	hive, path, err := types.SplitPath(args[0])
	if err != nil {
		return err
	}

	client, done, err := newClient()
	if err != nil {
		return err
	}
	defer done()

	metas, err := client.ValueNames(hive, path)
	if err != nil {
		return fmt.Errorf("failed to list values: %w", err)
	}

	if jsonOut {
		items := make([]map[string]string, 0, len(metas))
		for _, m := range metas {
			items = append(items, map[string]string{
				"name": m.Name,
				"type": m.Type.String(),
			})
		}
		return printJSON(map[string]interface{}{
			"hive":   hive.String(),
			"path":   path,
			"values": items,
		})
	}

	for _, m := range metas {
		name := m.Name
		if name == "" {
			name = "(default)"
		}
		printInfo("%-14s %s\n", m.Type, name)
	}
	return nil
}
