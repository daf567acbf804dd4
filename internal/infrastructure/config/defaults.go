package config

import "github.com/bnema/feedwall/internal/domain/entity"

// Default configuration constants
const (
	defaultResizeDebounceMs = 150

	defaultWindowWidth     = 1600
	defaultWindowHeight    = 1000
	defaultWindowTitle     = "feedwall"
	defaultWindowMainRatio = 0.72

	defaultDesktopUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/605.1.15 " +
		"(KHTML, like Gecko) Version/17.0 Safari/605.1.15"
	defaultMobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 " +
		"(KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultLogMaxSizeMB  = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAgeDays = 7
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	sites := entity.DefaultSites()
	siteConfigs := make([]SiteConfig, len(sites))
	layout := make([]string, len(sites))
	for i, s := range sites {
		siteConfigs[i] = SiteConfig{ID: string(s.ID), Name: s.Name, URL: s.URL}
		layout[i] = string(s.ID)
	}

	return &Config{
		Sites:  siteConfigs,
		Layout: LayoutConfig{Default: layout},
		Viewport: ViewportConfig{
			Desktop:          viewportConfigFrom(entity.DesktopViewport),
			Mobile:           viewportConfigFrom(entity.MobileViewport),
			ResizeDebounceMs: defaultResizeDebounceMs,
		},
		UserAgents: UserAgentsConfig{
			Desktop: defaultDesktopUserAgent,
			Mobile:  defaultMobileUserAgent,
		},
		Window: WindowConfig{
			Width:     defaultWindowWidth,
			Height:    defaultWindowHeight,
			Title:     defaultWindowTitle,
			MainRatio: defaultWindowMainRatio,
		},
		Appearance: AppearanceConfig{Palette: defaultPalette()},
		Logging: LoggingConfig{
			Level:      defaultLogLevel,
			Format:     defaultLogFormat,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}

func defaultPalette() ColorPalette {
	return ColorPalette{
		Background: "#0f1115",
		Surface:    "#181b22",
		Text:       "#e6e6e6",
		Muted:      "#8b93a1",
		Accent:     "#4a90e2",
		Border:     "#2a2f3a",
	}
}

func viewportConfigFrom(rv entity.ReferenceViewport) ReferenceViewportConfig {
	return ReferenceViewportConfig{Width: rv.Width, Height: rv.Height, MinScale: rv.MinScale, MaxScale: rv.MaxScale}
}
