package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/pkg/types"
)

var getType string

func init() {
	cmd := newGetCmd()
	cmd.Flags().StringVar(&getType, "type", "sz",
		"Value type (sz, expand_sz, binary, dword, multi_sz, qword)")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <path> <name>",
		Short: "Get a registry value",
		Long: `The get command reads one registry value as the given type. An absent
value is not an error; it is reported as not present. Use an empty name for
the key's default value.

Example:
  regctl get "HKLM\Software\Vendor\App" "Version"
  regctl get "HKLM\Software\Vendor\App" "Flags" --type dword
  regctl get "HKCU\Environment" "TEMP" --type expand_sz`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	hive, path, err := types.SplitPath(args[0])
	if err != nil {
		return err
	}
	name := args[1]

	vt, err := types.ParseValueType(getType)
	if err != nil {
		return err
	}

	client, done, err := newClient()
	if err != nil {
		return err
	}
	defer done()

	v, found, err := client.Value(hive, path, name, vt)
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}

	if jsonOut {
		result := map[string]interface{}{
			"hive":  hive.String(),
			"path":  path,
			"name":  name,
			"type":  vt.String(),
			"found": found,
		}
		if found {
			result["value"] = v
		}
		return printJSON(result)
	}

	if !found {
		printInfo("(value not present)\n")
		return nil
	}
	printInfo("%s\n", formatValue(v, vt))
	return nil
}
