package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext returns the logger carried by ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// with derives a child logger carrying one more string field.
func with(ctx context.Context, key, value string) context.Context {
	child := FromContext(ctx).With().Str(key, value).Logger()
	return WithContext(ctx, child)
}

// WithComponent tags log lines with the emitting component, e.g. "arranger".
func WithComponent(ctx context.Context, component string) context.Context {
	return with(ctx, "component", component)
}

// WithSiteID tags log lines with the site a panel shows.
func WithSiteID(ctx context.Context, siteID string) context.Context {
	return with(ctx, "site", siteID)
}

// WithSession tags log lines with the short form of the run's session id.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return with(ctx, "session", ShortSessionID(sessionID))
}
