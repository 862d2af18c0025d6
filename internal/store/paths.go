package store

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "retroboard"

// DataDir returns the platform-specific data directory, creating it if
// needed.
//   - macOS: ~/Library/Application Support/retroboard/
//   - Linux: $XDG_DATA_HOME/retroboard/ or ~/.local/share/retroboard/
//   - Windows: %APPDATA%/retroboard/
func DataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// DefaultCacheDir returns the directory of the persistent perft cache.
func DefaultCacheDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(dataDir, "perft")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
