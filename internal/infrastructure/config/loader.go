// Package config loads, validates and watches the feedwall TOML configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const envPrefix = "FEEDWALL"

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(Change)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// FEEDWALL_WINDOW_WIDTH, FEEDWALL_DATABASE_PATH, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Shorter names shared with logging.NewFromEnv.
	if err := v.BindEnv("logging.level", "FEEDWALL_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind FEEDWALL_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "FEEDWALL_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind FEEDWALL_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(Change), 0),
	}, nil
}

// Load loads the configuration from file and environment variables. A
// missing config file is created from the defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := finalizeConfig(config); err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf(
			"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
			rereadErr,
		)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	return config, nil
}

// finalizeConfig fills computed paths, normalizes and validates.
func finalizeConfig(config *Config) error {
	if err := ensurePaths(config); err != nil {
		return err
	}
	normalizeConfig(config)
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func ensurePaths(config *Config) error {
	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}
	if config.Logging.EnableFileLog && config.Logging.LogDir == "" {
		logDir, err := GetLogDir()
		if err != nil {
			return fmt.Errorf("failed to get log directory: %w", err)
		}
		config.Logging.LogDir = logDir
	}
	return nil
}

func normalizeConfig(config *Config) {
	for i := range config.Sites {
		config.Sites[i].ID = strings.TrimSpace(config.Sites[i].ID)
		config.Sites[i].URL = strings.TrimSpace(config.Sites[i].URL)
		config.Sites[i].Name = strings.TrimSpace(config.Sites[i].Name)
		if config.Sites[i].Name == "" {
			config.Sites[i].Name = config.Sites[i].ID
		}
	}
	for i := range config.Layout.Default {
		config.Layout.Default[i] = strings.TrimSpace(config.Layout.Default[i])
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	switch strings.ToLower(config.Logging.Format) {
	case "json":
		config.Logging.Format = "json"
	case "", "console", "text":
		config.Logging.Format = "console"
	}

	if strings.TrimSpace(config.Window.Title) == "" {
		config.Window.Title = defaultWindowTitle
	}
	if config.Database.Path != "" {
		config.Database.Path = filepath.Clean(config.Database.Path)
	}
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return m.config.clone()
}

// Save validates cfg and writes it to the config file.
func (m *Manager) Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	next := cfg.clone()
	if err := finalizeConfig(next); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.viper.ConfigFileUsed()
	if path == "" {
		var err error
		if path, err = GetConfigFile(); err != nil {
			return err
		}
	}
	if err := WriteConfig(next, path); err != nil {
		return err
	}

	m.config = next
	return nil
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the defaults and the JSON schema next to them.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := WriteConfig(DefaultConfig(), configFile); err != nil {
		return err
	}
	if err := GenerateSchemaFile(); err != nil {
		return err
	}
	m.viper.SetConfigFile(configFile)
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// database.path is computed in Load.
	m.viper.SetDefault("sites", defaults.Sites)
	m.viper.SetDefault("layout.default", defaults.Layout.Default)
	m.setViewportDefaults(defaults)
	m.viper.SetDefault("user_agents.desktop", defaults.UserAgents.Desktop)
	m.viper.SetDefault("user_agents.mobile", defaults.UserAgents.Mobile)
	m.viper.SetDefault("window.width", defaults.Window.Width)
	m.viper.SetDefault("window.height", defaults.Window.Height)
	m.viper.SetDefault("window.title", defaults.Window.Title)
	m.viper.SetDefault("window.main_ratio", defaults.Window.MainRatio)
	m.setAppearanceDefaults(defaults)
	m.setLoggingDefaults(defaults)
	m.viper.SetDefault("database.path", "")
}

func (m *Manager) setViewportDefaults(defaults *Config) {
	for mode, rv := range map[string]ReferenceViewportConfig{
		"desktop": defaults.Viewport.Desktop,
		"mobile":  defaults.Viewport.Mobile,
	} {
		m.viper.SetDefault("viewport."+mode+".width", rv.Width)
		m.viper.SetDefault("viewport."+mode+".height", rv.Height)
		m.viper.SetDefault("viewport."+mode+".min_scale", rv.MinScale)
		m.viper.SetDefault("viewport."+mode+".max_scale", rv.MaxScale)
	}
	m.viper.SetDefault("viewport.resize_debounce_ms", defaults.Viewport.ResizeDebounceMs)
}

func (m *Manager) setAppearanceDefaults(defaults *Config) {
	p := defaults.Appearance.Palette
	m.viper.SetDefault("appearance.palette.background", p.Background)
	m.viper.SetDefault("appearance.palette.surface", p.Surface)
	m.viper.SetDefault("appearance.palette.text", p.Text)
	m.viper.SetDefault("appearance.palette.muted", p.Muted)
	m.viper.SetDefault("appearance.palette.accent", p.Accent)
	m.viper.SetDefault("appearance.palette.border", p.Border)
}

func (m *Manager) setLoggingDefaults(defaults *Config) {
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)
	m.viper.SetDefault("logging.enable_file_log", defaults.Logging.EnableFileLog)
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	m.viper.SetDefault("logging.max_age_days", defaults.Logging.MaxAgeDays)
}

func (c *Config) clone() *Config {
	out := *c
	out.Sites = append([]SiteConfig(nil), c.Sites...)
	out.Layout.Default = append([]string(nil), c.Layout.Default...)
	return &out
}

// Global configuration manager instance
var (
	globalManager     *Manager
	globalManagerOnce sync.Once
	globalManagerErr  error
)

// Init initializes the global configuration manager.
func Init() error {
	globalManagerOnce.Do(func() {
		var m *Manager
		m, globalManagerErr = NewManager()
		if globalManagerErr != nil {
			return
		}
		if globalManagerErr = m.Load(); globalManagerErr != nil {
			return
		}
		globalManager = m
	})
	return globalManagerErr
}

// Get returns the global configuration, or the defaults before Init.
func Get() *Config {
	if globalManager == nil {
		return DefaultConfig()
	}
	return globalManager.Get()
}

// GetManager returns the global configuration manager.
func GetManager() *Manager {
	return globalManager
}
