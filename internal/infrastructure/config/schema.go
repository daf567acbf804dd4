package config

import (
	"time"

	"github.com/bnema/feedwall/internal/domain/entity"
)

// Config represents the complete configuration for feedwall.
type Config struct {
	// Sites lists the configured sources in default arrangement order.
	Sites      []SiteConfig     `mapstructure:"sites" yaml:"sites" toml:"sites"`
	Layout     LayoutConfig     `mapstructure:"layout" yaml:"layout" toml:"layout"`
	Viewport   ViewportConfig   `mapstructure:"viewport" yaml:"viewport" toml:"viewport"`
	UserAgents UserAgentsConfig `mapstructure:"user_agents" yaml:"user_agents" toml:"user_agents"`
	Window     WindowConfig     `mapstructure:"window" yaml:"window" toml:"window"`
	Appearance AppearanceConfig `mapstructure:"appearance" yaml:"appearance" toml:"appearance"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging" toml:"logging"`
	Database   DatabaseConfig   `mapstructure:"database" yaml:"database" toml:"database"`
}

// SiteConfig describes one panel source.
type SiteConfig struct {
	ID   string `mapstructure:"id" yaml:"id" toml:"id" jsonschema:"pattern=^[a-z][a-z0-9_-]*$"`
	Name string `mapstructure:"name" yaml:"name" toml:"name"`
	URL  string `mapstructure:"url" yaml:"url" toml:"url" jsonschema:"format=uri"`
}

// LayoutConfig holds the arrangement used on first launch and by "layout reset".
type LayoutConfig struct {
	// Default is [main, secondary, sub0, sub1, ...]. An empty secondary is "".
	Default []string `mapstructure:"default" yaml:"default" toml:"default"`
}

// ViewportConfig holds the reference viewports that zoom-to-fit scales against.
type ViewportConfig struct {
	Desktop ReferenceViewportConfig `mapstructure:"desktop" yaml:"desktop" toml:"desktop"`
	Mobile  ReferenceViewportConfig `mapstructure:"mobile" yaml:"mobile" toml:"mobile"`
	// ResizeDebounceMs coalesces container resizes before zoom is recomputed.
	ResizeDebounceMs int `mapstructure:"resize_debounce_ms" yaml:"resize_debounce_ms" toml:"resize_debounce_ms" jsonschema:"minimum=0"`
}

// ReferenceViewportConfig is the nominal logical size and scale range of one mode.
type ReferenceViewportConfig struct {
	Width    float64 `mapstructure:"width" yaml:"width" toml:"width"`
	Height   float64 `mapstructure:"height" yaml:"height" toml:"height"`
	MinScale float64 `mapstructure:"min_scale" yaml:"min_scale" toml:"min_scale"`
	MaxScale float64 `mapstructure:"max_scale" yaml:"max_scale" toml:"max_scale"`
}

// UserAgentsConfig holds the user-agent string applied per presentation mode.
type UserAgentsConfig struct {
	Desktop string `mapstructure:"desktop" yaml:"desktop" toml:"desktop"`
	Mobile  string `mapstructure:"mobile" yaml:"mobile" toml:"mobile"`
}

// WindowConfig controls the top-level window.
type WindowConfig struct {
	Width  int    `mapstructure:"width" yaml:"width" toml:"width" jsonschema:"minimum=320"`
	Height int    `mapstructure:"height" yaml:"height" toml:"height" jsonschema:"minimum=240"`
	Title  string `mapstructure:"title" yaml:"title" toml:"title"`
	// MainRatio is the share of the window width given to the main column.
	MainRatio float64 `mapstructure:"main_ratio" yaml:"main_ratio" toml:"main_ratio" jsonschema:"minimum=0.3,maximum=0.9"`
}

// AppearanceConfig holds the colors shared by the window chrome and the CLI.
type AppearanceConfig struct {
	Palette ColorPalette `mapstructure:"palette" yaml:"palette" toml:"palette"`
}

// ColorPalette is a small set of #RRGGBB colors.
type ColorPalette struct {
	Background string `mapstructure:"background" yaml:"background" toml:"background"`
	Surface    string `mapstructure:"surface" yaml:"surface" toml:"surface"`
	Text       string `mapstructure:"text" yaml:"text" toml:"text"`
	Muted      string `mapstructure:"muted" yaml:"muted" toml:"muted"`
	Accent     string `mapstructure:"accent" yaml:"accent" toml:"accent"`
	Border     string `mapstructure:"border" yaml:"border" toml:"border"`
}

// LoggingConfig represents logging configuration options.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=fatal"`
	Format string `mapstructure:"format" yaml:"format" toml:"format" jsonschema:"enum=console,enum=json,enum=text"`
	// EnableFileLog writes a rotated feedwall.log next to the console output.
	EnableFileLog bool   `mapstructure:"enable_file_log" yaml:"enable_file_log" toml:"enable_file_log"`
	LogDir        string `mapstructure:"log_dir" yaml:"log_dir" toml:"log_dir"`
	MaxSizeMB     int    `mapstructure:"max_size_mb" yaml:"max_size_mb" toml:"max_size_mb" jsonschema:"minimum=1"`
	MaxBackups    int    `mapstructure:"max_backups" yaml:"max_backups" toml:"max_backups" jsonschema:"minimum=0"`
	MaxAgeDays    int    `mapstructure:"max_age_days" yaml:"max_age_days" toml:"max_age_days" jsonschema:"minimum=0"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	// Path defaults to $XDG_DATA_HOME/feedwall/feedwall.sqlite when empty.
	Path string `mapstructure:"path" yaml:"path" toml:"path"`
}

// SiteEntities converts the configured sites to domain sites.
func (c *Config) SiteEntities() []entity.Site {
	sites := make([]entity.Site, len(c.Sites))
	for i, s := range c.Sites {
		sites[i] = entity.Site{ID: entity.SiteID(s.ID), Name: s.Name, URL: s.URL}
	}
	return sites
}

// DefaultArrangement returns layout.default, falling back to site order.
func (c *Config) DefaultArrangement() entity.Arrangement {
	if len(c.Layout.Default) > 0 {
		return entity.ArrangementFromStrings(c.Layout.Default)
	}
	return entity.Arrangement(entity.SiteIDs(c.SiteEntities()))
}

// Viewports converts the viewport section to domain reference viewports.
func (c *Config) Viewports() entity.Viewports {
	return entity.Viewports{
		Desktop: c.Viewport.Desktop.toEntity(),
		Mobile:  c.Viewport.Mobile.toEntity(),
	}
}

// ResizeDebounce returns the container-resize debounce interval.
func (c *Config) ResizeDebounce() time.Duration {
	return time.Duration(c.Viewport.ResizeDebounceMs) * time.Millisecond
}

func (r ReferenceViewportConfig) toEntity() entity.ReferenceViewport {
	return entity.ReferenceViewport{Width: r.Width, Height: r.Height, MinScale: r.MinScale, MaxScale: r.MaxScale}
}
