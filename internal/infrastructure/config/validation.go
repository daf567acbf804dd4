package config

import (
	"fmt"
	"strings"

	domainvalidation "github.com/bnema/feedwall/internal/domain/validation"
	"github.com/bnema/feedwall/internal/logging"
)

const (
	minWindowWidth  = 320
	minWindowHeight = 240
	minMainRatio    = 0.3
	maxMainRatio    = 0.9
)

// validateConfig performs comprehensive validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateSites(config)...)
	validationErrors = append(validationErrors, validateLayout(config)...)
	validationErrors = append(validationErrors, validateViewport(config)...)
	validationErrors = append(validationErrors, validateUserAgents(config)...)
	validationErrors = append(validationErrors, validateWindow(config)...)
	validationErrors = append(validationErrors, validateAppearance(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}
	return nil
}

// Validate reports every problem with cfg in a single error.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	return validateConfig(cfg)
}

func validateSites(config *Config) []string {
	if len(config.Sites) == 0 {
		return []string{"sites must list at least one site"}
	}

	var validationErrors []string
	seen := make(map[string]struct{}, len(config.Sites))
	for i, site := range config.Sites {
		field := fmt.Sprintf("sites[%d]", i)
		validationErrors = append(validationErrors, domainvalidation.ValidateSiteID(field+".id", site.ID)...)
		validationErrors = append(validationErrors, domainvalidation.ValidateSiteName(field+".name", site.Name)...)
		validationErrors = append(validationErrors, domainvalidation.ValidateSiteURL(field+".url", site.URL)...)
		if _, dup := seen[site.ID]; dup && site.ID != "" {
			validationErrors = append(validationErrors, fmt.Sprintf("%s.id %q is duplicated", field, site.ID))
		}
		seen[site.ID] = struct{}{}
	}
	return validationErrors
}

func validateLayout(config *Config) []string {
	if len(config.Layout.Default) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(config.Sites))
	for _, site := range config.Sites {
		known[site.ID] = struct{}{}
	}

	var validationErrors []string
	used := make(map[string]struct{}, len(config.Layout.Default))
	for i, id := range config.Layout.Default {
		field := fmt.Sprintf("layout.default[%d]", i)
		if id == "" {
			// Only the secondary slot may be empty.
			if i != 1 {
				validationErrors = append(validationErrors, field+" cannot be empty")
			}
			continue
		}
		if _, ok := known[id]; !ok {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %q is not a configured site", field, id))
		}
		if _, dup := used[id]; dup {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %q appears more than once", field, id))
		}
		used[id] = struct{}{}
	}
	return validationErrors
}

func validateViewport(config *Config) []string {
	var validationErrors []string
	vps := config.Viewports()
	if err := vps.Desktop.Validate(); err != nil {
		validationErrors = append(validationErrors, "viewport.desktop: "+err.Error())
	}
	if err := vps.Mobile.Validate(); err != nil {
		validationErrors = append(validationErrors, "viewport.mobile: "+err.Error())
	}
	if config.Viewport.ResizeDebounceMs < 0 {
		validationErrors = append(validationErrors, "viewport.resize_debounce_ms must be non-negative")
	}
	return validationErrors
}

func validateUserAgents(config *Config) []string {
	var validationErrors []string
	for field, ua := range map[string]string{
		"user_agents.desktop": config.UserAgents.Desktop,
		"user_agents.mobile":  config.UserAgents.Mobile,
	} {
		if strings.ContainsAny(ua, "\r\n") {
			validationErrors = append(validationErrors, field+" must not contain newlines")
		}
	}
	return validationErrors
}

func validateWindow(config *Config) []string {
	var validationErrors []string
	if config.Window.Width < minWindowWidth {
		validationErrors = append(validationErrors, fmt.Sprintf("window.width must be at least %d", minWindowWidth))
	}
	if config.Window.Height < minWindowHeight {
		validationErrors = append(validationErrors, fmt.Sprintf("window.height must be at least %d", minWindowHeight))
	}
	if config.Window.MainRatio < minMainRatio || config.Window.MainRatio > maxMainRatio {
		validationErrors = append(validationErrors,
			fmt.Sprintf("window.main_ratio must be between %.1f and %.1f", minMainRatio, maxMainRatio))
	}
	return validationErrors
}

func validateAppearance(config *Config) []string {
	p := config.Appearance.Palette
	return domainvalidation.ValidateColors("appearance.palette", []domainvalidation.NamedColor{
		{Name: "background", Value: p.Background},
		{Name: "surface", Value: p.Surface},
		{Name: "text", Value: p.Text},
		{Name: "muted", Value: p.Muted},
		{Name: "accent", Value: p.Accent},
		{Name: "border", Value: p.Border},
	})
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	if config.Logging.Level != "" && !logging.IsValidLevel(config.Logging.Level) {
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level %q must be one of trace, debug, info, warn, error, fatal", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "", "console", "json":
	default:
		validationErrors = append(validationErrors, "logging.format must be console or json")
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	if config.Logging.MaxAgeDays < 0 {
		validationErrors = append(validationErrors, "logging.max_age_days must be non-negative")
	}
	return validationErrors
}
