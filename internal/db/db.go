package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names the SQL flavour behind a Conn.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DialectFor infers the dialect from a DSN. postgres:// and postgresql://
// URLs and key=value strings naming a host select Postgres; anything else is
// treated as a SQLite file path.
func DialectFor(dsn string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case strings.Contains(lower, "host=") && strings.Contains(lower, "dbname="):
		return DialectPostgres
	}
	return DialectSQLite
}

// Conn is an open, migrated database together with its dialect.
type Conn struct {
	DB      *sql.DB
	Dialect Dialect
}

// Querier returns a DBTX for the whole database. Queries written with ?
// placeholders are rebound for Postgres.
func (c *Conn) Querier() DBTX {
	return Bind(c.Dialect, c.DB)
}

func (c *Conn) Close() error {
	return c.DB.Close()
}

// Open dispatches on the DSN's dialect and runs migrations.
func Open(dsn string) (*Conn, error) {
	if DialectFor(dsn) == DialectPostgres {
		return OpenPostgres(dsn)
	}
	return OpenDB(dsn)
}

// OpenDB opens a SQLite database at the given path.
// If path is ":memory:", uses an in-memory database pinned to a single
// connection so every query sees the same data.
// Sets WAL mode and enables foreign keys.
// Runs migrations automatically.
func OpenDB(path string) (*Conn, error) {
	dsn := path
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
		// Pragmas in the DSN apply to every pooled connection.
		dsn = "file:" + path + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	conn := &Conn{DB: db, Dialect: DialectSQLite}
	if err := Migrate(context.Background(), conn); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return conn, nil
}

// OpenPostgres connects through lib/pq and runs migrations.
func OpenPostgres(dsn string) (*Conn, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	conn := &Conn{DB: db, Dialect: DialectPostgres}
	if err := Migrate(context.Background(), conn); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return conn, nil
}
