// Package xdg provides helpers to resolve XDG Base Directory paths for mural.
// It implements the XDG Base Directory specification for determining appropriate
// locations for configuration files on Unix-like systems.
//
// The package handles fallback to traditional locations when XDG environment
// variables are not set and ensures private permissions for the directories it creates.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName names the per-application subdirectory.
const AppName = "mural"

// ConfigDir returns the XDG config directory for mural.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/mural when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return ensure("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the XDG data directory for mural.
// It is used by the encrypted file keyring on systems without a native keychain.
// It falls back to ~/.local/share/mural when XDG_DATA_HOME is unset.
func DataDir() (string, error) {
	return ensure("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func ensure(envKey, homeFallback string) (string, error) {
	base := os.Getenv(envKey)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeFallback)
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
