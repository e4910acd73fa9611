package shared

import (
	"fmt"
	"os"
	"path/filepath"
)

// RuntimeDataDir resolves the directory holding per-user cache files.
//
// The configured data_dir wins when set; otherwise the platform cache
// directory is used with a "scrob" subdirectory. The directory is created
// if it does not exist yet.
func RuntimeDataDir(config *Config) (string, error) {
	dir := ""
	if config != nil {
		dir = config.App.DataDir
	}

	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve cache directory: %w", err)
		}
		dir = filepath.Join(base, "scrob")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return dir, nil
}
