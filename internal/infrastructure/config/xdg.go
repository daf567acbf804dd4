package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "feedwall"
	databaseName = "feedwall.sqlite"
	lockName     = "feedwall.lock"
	configName   = "config.toml"
	schemaName   = "config.schema.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// XDGDirs holds the XDG Base Directory paths for the application.
type XDGDirs struct {
	ConfigHome string
	DataHome   string
	StateHome  string
	CacheHome  string
}

// GetXDGDirs returns the XDG Base Directory paths for feedwall:
// - $XDG_CONFIG_HOME/feedwall (default: ~/.config/feedwall)
// - $XDG_DATA_HOME/feedwall (default: ~/.local/share/feedwall)
// - $XDG_STATE_HOME/feedwall (default: ~/.local/state/feedwall)
// - $XDG_CACHE_HOME/feedwall (default: ~/.cache/feedwall)
//
// With ENV=dev everything lives under ./.dev/feedwall.
func GetXDGDirs() (*XDGDirs, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		devDir := filepath.Join(cwd, ".dev", appName)
		return &XDGDirs{ConfigHome: devDir, DataHome: devDir, StateHome: devDir, CacheHome: filepath.Join(devDir, "cache")}, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &XDGDirs{
		ConfigHome: xdgDir("XDG_CONFIG_HOME", filepath.Join(homeDir, ".config")),
		DataHome:   xdgDir("XDG_DATA_HOME", filepath.Join(homeDir, ".local", "share")),
		StateHome:  xdgDir("XDG_STATE_HOME", filepath.Join(homeDir, ".local", "state")),
		CacheHome:  xdgDir("XDG_CACHE_HOME", filepath.Join(homeDir, ".cache")),
	}, nil
}

func xdgDir(env, fallback string) string {
	base := os.Getenv(env)
	if base == "" {
		base = fallback
	}
	return filepath.Join(base, appName)
}

// GetConfigDir returns the XDG config directory for feedwall.
func GetConfigDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.ConfigHome, nil
}

// GetDataDir returns the XDG data directory for feedwall.
func GetDataDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.DataHome, nil
}

// GetStateDir returns the XDG state directory for feedwall.
func GetStateDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.StateHome, nil
}

// GetCacheDir returns the XDG cache directory, used for the web cache.
func GetCacheDir() (string, error) {
	dirs, err := GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.CacheHome, nil
}

// GetLogDir returns the directory for rotated log files.
func GetLogDir() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, "logs"), nil
}

// GetConfigFile returns the path to the main configuration file.
func GetConfigFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configName), nil
}

// GetSchemaFile returns the path of the generated JSON schema.
func GetSchemaFile() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, schemaName), nil
}

// GetDatabaseFile returns the path to the settings database. It holds user
// preferences and therefore lives in XDG_DATA_HOME.
func GetDatabaseFile() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, databaseName), nil
}

// GetLockFile returns the single-instance lock path.
func GetLockFile() (string, error) {
	stateDir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, lockName), nil
}

// EnsureDirectories creates the XDG directories if they don't exist.
func EnsureDirectories() error {
	dirs, err := GetXDGDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{dirs.ConfigHome, dirs.DataHome, dirs.StateHome, dirs.CacheHome} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
