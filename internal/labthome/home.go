// Package labthome resolves the user-home base directory every subsystem's
// on-disk state (cache, sdk, plugins, cached repository manifests) is rooted
// under.
package labthome

import (
	"os"
	"path/filepath"
)

// Dir returns LABT_HOME if set, else $HOME/.labt.
func Dir() (string, error) {
	if home := os.Getenv("LABT_HOME"); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".labt"), nil
}

// CacheDir returns <home>/cache.
func CacheDir() (string, error) {
	home, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "cache"), nil
}

// SDKDir returns <home>/sdk.
func SDKDir() (string, error) {
	home, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "sdk"), nil
}

// PluginsDir returns <home>/plugins.
func PluginsDir() (string, error) {
	home, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "plugins"), nil
}

// RepositoriesDir returns <home>/repositories, where fetched manifests are
// cached.
func RepositoriesDir() (string, error) {
	home, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "repositories"), nil
}
