package port

import (
	"context"
	"database/sql"
)

// Database hands out the settings database connection. The sqlite adapter
// opens it on the first Conn so CLI commands that never read settings do
// not pay for the open and migrations.
type Database interface {
	Conn(ctx context.Context) (*sql.DB, error)
	// Opened reports whether Conn has produced a connection that is not
	// yet closed.
	Opened() bool
	Close() error
}
