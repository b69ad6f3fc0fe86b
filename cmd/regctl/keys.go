package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/pkg/types"
)

func init() {
	rootCmd.AddCommand(newKeysCmd())
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <path>",
		Short: "List sub-keys at a given path",
		Long: `The keys command lists the direct sub-keys of a registry key, in the
order the provider returns them.

Example:
  regctl keys "HKLM\Software"
  regctl keys "HKLM\System\CurrentControlSet\Services" --json
  regctl keys "HKCU\Software" --host build-agent-07`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
	return cmd
}

func runKeys(args []string) error {
	hive, path, err := types.SplitPath(args[0])
	if err != nil {
		return err
	}

	client, done, err := newClient()
	if err != nil {
		return err
	}
	defer done()

	names, err := client.SubKeys(hive, path)
	if err != nil {
		return fmt.Errorf("failed to list keys: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"hive": hive.String(),
			"path": path,
			"keys": names,
		})
	}

	for _, name := range names {
		printInfo("%s\n", name)
	}
	return nil
}
