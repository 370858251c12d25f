package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "TOPOCAT_CONFIG"
	// ConfigFileName is the config file name looked up in the working directory
	ConfigFileName = "topocat.yaml"
	// ConfigDirName is the config directory name under XDG and /etc
	ConfigDirName = "topocat"
)

// FindConfigPath returns the first existing config file, in order:
//  1. $TOPOCAT_CONFIG
//  2. ./topocat.yaml
//  3. $XDG_CONFIG_HOME/topocat/config.yaml
//  4. ~/.config/topocat/config.yaml
//  5. /etc/topocat/config.yaml
//
// Returns empty string if no config file found.
func FindConfigPath() string {
	for _, path := range configCandidates() {
		if fileExists(path) {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

func configCandidates() []string {
	var paths []string

	if path := os.Getenv(EnvConfigPath); path != "" {
		paths = append(paths, path)
	}
	paths = append(paths, ConfigFileName)

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}

	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
