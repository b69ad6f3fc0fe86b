package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regprov/internal/config"
	"github.com/joshuapare/regprov/internal/logging"
	"github.com/joshuapare/regprov/reg"
	"github.com/joshuapare/regprov/wmi"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	hostFlag   string
	nsFlag     string
	userFlag   string
	passFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Manage a local or remote Windows registry through WMI",
	Long: `regctl reads, writes and enumerates registry keys and values on a
local or remote machine through the StdRegProv management provider, without
touching the native registry API. Paths are rooted at a hive, e.g.
"HKLM\Software\Vendor".`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Connection profile (YAML); defaults to $REGPROV_CONFIG")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Machine to manage (default: local)")
	rootCmd.PersistentFlags().StringVar(&nsFlag, "namespace", "", "WMI namespace override")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "User for remote connections")
	rootCmd.PersistentFlags().StringVar(&passFlag, "password", "", "Password for remote connections")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newClient resolves the connection profile (flags over file), connects a
// provider session and returns a client plus its cleanup.
func newClient() (*reg.Client, func(), error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, nil, err
	}
	if hostFlag != "" {
		cfg.Host = hostFlag
	}
	if nsFlag != "" {
		cfg.Namespace = nsFlag
	}
	if userFlag != "" {
		cfg.User = userFlag
	}
	if passFlag != "" {
		cfg.Password = passFlag
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if verbose {
		level = logging.ParseLevel("debug")
	}
	logging.Init(logging.Options{Enabled: verbose || cfg.LogLevel != "", Level: level})

	s := wmi.NewSession(wmi.Options{
		Host:      cfg.Host,
		Namespace: cfg.Namespace,
		User:      cfg.User,
		Password:  cfg.Password,
		Logger:    logging.L,
	})
	if err := s.Connect(); err != nil {
		return nil, nil, fmt.Errorf("failed to connect: %w", err)
	}
	return reg.New(s), s.Close, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
