// Package localdb opens the SQLite cache of the client and tracks which
// tables changed so that live queries can re-run.
package localdb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gympro/internal/client/migrations"
	"github.com/dmitrijs2005/gympro/internal/client/stream"
	"github.com/dmitrijs2005/gympro/internal/dbx"
	"github.com/dmitrijs2005/gympro/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Table names known to the tracker.
const (
	TableWorkouts  = "workouts"
	TableExercises = "exercises"
	TableMetadata  = "metadata"
)

// DB serializes writes, lets reads run concurrently and notifies table
// subscribers after every committed write.
type DB struct {
	sql *sql.DB

	writeMu sync.Mutex

	mu      sync.Mutex
	version uint64
	tables  map[string]*stream.Subject[uint64]
}

// DSN adds the pragmas the cache relies on to a file path.
func DSN(path string) string {
	if path == "" {
		path = ":memory:"
	}
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	return dsn
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Open opens the database at path and applies migrations.
func Open(ctx context.Context, path string) (*DB, error) {
	if path != ":memory:" && path != "" {
		abs, err := filex.EnsureParentDir(path)
		if err != nil {
			return nil, err
		}
		path = abs
	}

	conn, err := sql.Open("sqlite", DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if path == ":memory:" || path == "" {
		// every connection to :memory: is a separate database
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	if err := RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return New(conn), nil
}

// New wraps an already migrated connection.
func New(conn *sql.DB) *DB {
	return &DB{sql: conn, tables: make(map[string]*stream.Subject[uint64])}
}

func (d *DB) Close() error {
	return d.sql.Close()
}

// Reader returns the handle for queries.
func (d *DB) Reader() dbx.DBTX {
	return d.sql
}

// Write runs fn in a transaction while holding the write lock. When the
// transaction commits, subscribers of the touched tables are notified.
func (d *DB) Write(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error, touched ...string) error {
	d.writeMu.Lock()
	err := dbx.WithTx(ctx, d.sql, nil, fn)
	d.writeMu.Unlock()

	if err != nil {
		return err
	}
	d.notify(touched...)
	return nil
}

func (d *DB) subject(table string) *stream.Subject[uint64] {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.tables[table]
	if !ok {
		s = stream.NewSubject(stream.WithInitial(d.version))
		d.tables[table] = s
	}
	return s
}

func (d *DB) notify(tables ...string) {
	d.mu.Lock()
	d.version++
	v := d.version
	d.mu.Unlock()

	for _, t := range tables {
		d.subject(t).Publish(v)
	}
}

// Changes delivers a signal right away and again after each committed write
// to one of the tables. Signals coalesce while the receiver is busy.
func (d *DB) Changes(ctx context.Context, tables ...string) (<-chan struct{}, func()) {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan struct{}, 1)

	var wg sync.WaitGroup
	for _, t := range tables {
		ch, unsubscribe := d.subject(t).Subscribe(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer unsubscribe()
			for range ch {
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out, cancel
}
