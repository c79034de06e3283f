// Package config loads settings from the config file, the environment and
// command-line flags. It is read once at startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment variables, e.g. CONSTRUCTTRACK_BACKEND_URL
const EnvPrefix = "CONSTRUCTTRACK"

// Config holds application configuration
type Config struct {
	BackendURL    string
	Theme         string
	Notifications bool
	DataDir       string
	DBPath        string

	// File the settings were read from (created with defaults if missing)
	File string
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".constructtrack"
	}
	return filepath.Join(home, ".local", "share", "constructtrack")
}

// DefaultConfigFile returns $XDG_CONFIG_HOME/constructtrack/constructtrack.yml
func DefaultConfigFile() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("error getting user home directory: %w", err)
		}
		if runtime.GOOS == "windows" {
			configHome = filepath.Join(homeDir, "AppData", "Roaming")
		} else {
			configHome = filepath.Join(homeDir, ".config")
		}
	}
	return filepath.Join(configHome, "constructtrack", "constructtrack.yml"), nil
}

// Load reads configuration. Precedence, highest first: flags bound from
// flags (backend-url, theme), CONSTRUCTTRACK_* environment variables, the
// config file, defaults. An empty configFile means DefaultConfigFile.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile == "" {
		var err error
		configFile, err = DefaultConfigFile()
		if err != nil {
			return nil, err
		}
	}
	v.SetConfigFile(configFile)

	v.SetDefault("backend_url", "http://localhost:8000")
	v.SetDefault("theme", "slate")
	v.SetDefault("notifications", true)
	v.SetDefault("data_dir", DefaultDataDir())

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{"backend_url": "backend-url", "theme": "theme"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := writeDefaults(configFile); err != nil {
			return nil, err
		}
	}

	dataDir := v.GetString("data_dir")
	return &Config{
		BackendURL:    v.GetString("backend_url"),
		Theme:         v.GetString("theme"),
		Notifications: v.GetBool("notifications"),
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "constructtrack.db"),
		File:          configFile,
	}, nil
}

// writeDefaults creates the config file so users have something to edit.
// Only file-level keys are written; environment and flag values are not.
func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	out := viper.New()
	out.SetConfigType("yaml")
	out.Set("backend_url", "http://localhost:8000")
	out.Set("theme", "slate")
	out.Set("notifications", true)
	out.Set("data_dir", DefaultDataDir())
	if err := out.WriteConfigAs(path); err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	return nil
}
