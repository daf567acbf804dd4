package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/feedwall/internal/application/port"
	"github.com/bnema/feedwall/internal/logging"
)

// LazyDB opens the database on first access. The GUI warms it up in the
// background while the window is built; CLI commands that never read
// settings never pay for the WASM compile and migrations.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

var _ port.Database = (*LazyDB)(nil)

// NewLazyDB creates a provider for dbPath without opening it.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// Conn returns the connection, opening it on the first call.
func (l *LazyDB) Conn(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("opening settings database")

		db, err := NewConnection(ctx, l.dbPath)
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
		if err != nil {
			log.Error().Err(err).Msg("failed to open settings database")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the connection if it was opened.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	l.err = fmt.Errorf("database closed")
	return err
}

// Opened reports whether the connection is open.
func (l *LazyDB) Opened() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

// openDB wraps an already open connection.
type openDB struct {
	db *sql.DB
}

// FromDB adapts an open connection to port.Database.
func FromDB(db *sql.DB) port.Database {
	return openDB{db: db}
}

func (o openDB) Conn(context.Context) (*sql.DB, error) { return o.db, nil }
func (o openDB) Close() error                         { return o.db.Close() }
func (o openDB) Opened() bool                         { return true }
