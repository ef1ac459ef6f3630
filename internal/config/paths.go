package config

import (
	"os"
	"path/filepath"
)

// configDir returns $XDG_CONFIG_HOME/vocabflow or ~/.config/vocabflow.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "vocabflow"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vocabflow"), nil
}
