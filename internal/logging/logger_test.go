package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" info ":  zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"fatal":   zerolog.FatalLevel,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "Warn", "warning", "error", "fatal"} {
		assert.True(t, IsValidLevel(level), level)
	}
	assert.False(t, IsValidLevel("verbose"))
	assert.False(t, IsValidLevel(""))
}

func TestNew_WritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.FileDir = dir

	logger := New(cfg)
	logger.Info().Str("site", "youtube").Msg("hello")

	data, err := os.ReadFile(filepath.Join(dir, "feedwall.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"site":"youtube"`)
	assert.Contains(t, string(data), `"message":"hello"`)
}

func TestNew_RespectsLevel(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Level = zerolog.WarnLevel
	cfg.FileDir = dir

	logger := New(cfg)
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	data, err := os.ReadFile(filepath.Join(dir, "feedwall.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithContext(context.Background(), zerolog.New(&buf))
	ctx = WithComponent(ctx, "arranger")
	ctx = WithSiteID(ctx, "tiktok")
	ctx = WithSession(ctx, "20251217_205106_a7b3")

	FromContext(ctx).Info().Msg("swap")

	out := buf.String()
	assert.Contains(t, out, `"component":"arranger"`)
	assert.Contains(t, out, `"site":"tiktok"`)
	assert.Contains(t, out, `"session":"a7b3"`)
}

func TestFromContext_WithoutLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}

func TestSessionID(t *testing.T) {
	id := GenerateSessionID()
	assert.Regexp(t, regexp.MustCompile(`^\d{8}_\d{6}_[0-9a-f]{4}$`), id)
	assert.Equal(t, id[len(id)-4:], ShortSessionID(id))
	assert.Equal(t, "ab", ShortSessionID("ab"))
}

func TestNewSessionID(t *testing.T) {
	now := time.Date(2025, 12, 17, 20, 51, 6, 0, time.UTC)

	id := NewSessionID(now, bytes.NewReader([]byte{0xa7, 0xb3}))
	assert.Equal(t, SessionID("20251217_205106_a7b3"), id)
	assert.Equal(t, "a7b3", id.Short())

	short := NewSessionID(now, bytes.NewReader(nil))
	assert.Equal(t, "0000", short.Short())
}
