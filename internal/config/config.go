// Package config loads connection profiles for the regctl CLI. A profile
// names the machine to manage and the credentials to use; command-line
// flags override anything loaded from file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable pointing at a profile file,
// consulted when --config is not given.
const EnvConfig = "REGPROV_CONFIG"

// Config is a connection profile. The zero value targets the local machine
// with the calling identity.
type Config struct {
	// Host is the machine to manage; empty means local.
	Host string `yaml:"host"`

	// Namespace overrides the WMI namespace hosting the provider.
	Namespace string `yaml:"namespace"`

	// User and Password authenticate against a remote host.
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// LogLevel sets the verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Load reads a profile from path. A missing explicit path is an error; use
// Resolve when the file is optional.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &c, nil
}

// Resolve returns the profile for the CLI: the explicit path when given,
// else the EnvConfig file when set, else the zero profile.
func Resolve(explicit string) (*Config, error) {
	switch {
	case explicit != "":
		return Load(explicit)
	case os.Getenv(EnvConfig) != "":
		return Load(os.Getenv(EnvConfig))
	default:
		return &Config{}, nil
	}
}
