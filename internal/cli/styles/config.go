package styles

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config command output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderPaths lists the files feedwall reads and writes.
func (r *ConfigRenderer) RenderPaths(configFile, schemaFile, databaseFile, logDir string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	keyStyle := r.theme.Normal.Width(10)
	pathStyle := r.theme.Subtle

	row := func(icon, key, path string) string {
		return fmt.Sprintf("  %s %s %s\n", iconStyle.Render(icon), keyStyle.Render(key), pathStyle.Render(path))
	}
	return "\n" +
		row(IconConfig, "Config", configFile) +
		row(IconConfig, "Schema", schemaFile) +
		row(IconDatabase, "Database", databaseFile) +
		row(IconFolder, "Logs", logDir)
}

// RenderValid renders the "config is valid" message.
func (r *ConfigRenderer) RenderValid(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf(
		"\n  %s Config %s\n  %s Config is valid\n",
		iconStyle.Render(IconConfig),
		r.theme.Subtle.Render(path),
		iconStyle.Render(IconCheck),
	)
}

// RenderSchemaWritten renders the message after the schema file was written.
func (r *ConfigRenderer) RenderSchemaWritten(path string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Success)
	return fmt.Sprintf(
		"\n  %s Wrote %s\n",
		iconStyle.Render(IconCheck),
		r.theme.Subtle.Render(filepath.Base(path)),
	)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Error)
	return fmt.Sprintf("\n  %s Config error: %v\n", iconStyle.Render(IconX), err)
}
