package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/pkg/types"
	"github.com/joshuapare/regprov/reg"
)

var (
	setType      string
	setCreateKey bool
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setType, "type", "",
		"Value type (sz, expand_sz, binary, dword, multi_sz, qword); "+
			"omitted, strings wrapped in % are stored as expand_sz, the rest as sz")
	cmd.Flags().BoolVar(&setCreateKey, "create-key", false, "Create the key if it doesn't exist")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <path> <name> <value>",
		Short: "Set a registry value",
		Long: `The set command writes one registry value, creating it if absent and
overwriting it if present. The containing key is not created unless
--create-key is given. Binary values are hex encoded; multi_sz elements are
comma separated.

Example:
  regctl set "HKLM\Software\Vendor\App" "Version" "1.0.0"
  regctl set "HKLM\Software\Vendor\App" "Flags" "3" --type dword
  regctl set "HKLM\Software\Vendor\App" "Blob" "0102ff" --type binary
  regctl set "HKCU\Environment" "Dirs" "C:\a,C:\b" --type multi_sz
  regctl set "HKLM\Software\NewApp" "Name" "Test" --create-key`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	hive, path, err := types.SplitPath(args[0])
	if err != nil {
		return err
	}
	name := args[1]
	valueStr := args[2]

	// An explicit type bypasses the string classification policy.
	vt := reg.ClassifyString(valueStr)
	if setType != "" {
		vt, err = types.ParseValueType(setType)
		if err != nil {
			return err
		}
	}
	value, err := parseValueArg(valueStr, vt)
	if err != nil {
		return err
	}

	client, done, err := newClient()
	if err != nil {
		return err
	}
	defer done()

	if setCreateKey {
		if err := client.CreateKey(hive, path); err != nil {
			return fmt.Errorf("failed to create key: %w", err)
		}
	}
	if err := client.SetValue(hive, path, name, value, vt); err != nil {
		return fmt.Errorf("failed to set value: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"hive":    hive.String(),
			"path":    path,
			"name":    name,
			"type":    vt.String(),
			"success": true,
		})
	}

	printInfo("Set %s (%s)\n", name, vt)
	return nil
}
