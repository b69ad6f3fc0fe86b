package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/pkg/types"
)

var accessMask string

func init() {
	cmd := newAccessCmd()
	cmd.Flags().StringVar(&accessMask, "mask", "read",
		"Comma-separated permissions (query, set, create-sub-key, enumerate-sub-keys, "+
			"notify, create, delete, read-control, write-dac, write-owner, read)")
	rootCmd.AddCommand(cmd)
}

func newAccessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "access <path>",
		Short: "Check access permissions on a registry key",
		Long: `The access command reports whether the connected identity holds all of
the requested permissions on a key. The combined mask either is or is not
fully granted; there is no partial result.

Example:
  regctl access "HKLM\Software\Vendor\App"
  regctl access "HKLM\System\CurrentControlSet" --mask query,set
  regctl access "HKLM\Software" --mask delete --host lab-dc01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccess(args)
		},
	}
	return cmd
}

func runAccess(args []string) error {
	hive, path, err := types.SplitPath(args[0])
	if err != nil {
		return err
	}

	mask, err := parseAccessMask(accessMask)
	if err != nil {
		return err
	}

	client, done, err := newClient()
	if err != nil {
		return err
	}
	defer done()

	granted, err := client.CheckAccess(hive, path, mask)
	if err != nil {
		return fmt.Errorf("failed to check access: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"hive":    hive.String(),
			"path":    path,
			"mask":    uint32(mask),
			"granted": granted,
		})
	}

	if granted {
		printInfo("granted\n")
	} else {
		printInfo("denied\n")
	}
	return nil
}
