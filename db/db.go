package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store is the persistence handle shared by every handler. It is opened once
// at startup and closed at shutdown.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open connects to the store described by databaseURL and creates any
// missing tables.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	d, dsn, err := parseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if d.singleConn {
		// An SQLite file tolerates one writer; a :memory: database only
		// exists on the connection that created it.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	s := &Store{db: sqlDB, dialect: d}
	if err := s.createTables(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("error creating tables: %w", err)
	}

	return s, nil
}

// Driver reports which database driver backs the store.
func (s *Store) Driver() string {
	return s.dialect.driver
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// WithTx runs fn inside a transaction. The transaction is rolled back when fn
// returns an error or panics and committed otherwise.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) createTables(ctx context.Context) error {
	for _, query := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// insert runs an INSERT and returns the generated primary key. Postgres has
// no LastInsertId, so it gets a RETURNING clause instead.
func (s *Store) insert(ctx context.Context, q querier, query, pk string, args ...any) (int64, error) {
	if s.dialect.returning {
		var id int64
		err := q.QueryRowContext(ctx, s.rebind(query)+" RETURNING "+pk, args...).Scan(&id)
		return id, err
	}

	res, err := q.ExecContext(ctx, s.rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *Store) rebind(query string) string {
	return s.dialect.rebind(query)
}

// parseDatabaseURL picks a dialect from the connection string and returns the
// DSN in the form its driver expects.
func parseDatabaseURL(databaseURL string) (dialect, string, error) {
	raw := strings.TrimSpace(databaseURL)
	lower := strings.ToLower(raw)

	switch {
	case raw == "":
		return dialect{}, "", fmt.Errorf("database url is required")

	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return postgresDialect, raw, nil

	case strings.HasPrefix(lower, "mysql://"):
		cfg, err := mysql.ParseDSN(raw[len("mysql://"):])
		if err != nil {
			return dialect{}, "", fmt.Errorf("invalid mysql dsn: %w", err)
		}
		cfg.ParseTime = true
		cfg.ClientFoundRows = true
		return mysqlDialect, cfg.FormatDSN(), nil

	case strings.HasPrefix(lower, "sqlite://"):
		return sqliteDialect, sqliteDSN(raw[len("sqlite://"):]), nil

	case strings.HasPrefix(lower, "file:"), raw == ":memory:",
		strings.HasSuffix(lower, ".db"), strings.HasSuffix(lower, ".sqlite"), strings.HasSuffix(lower, ".sqlite3"):
		return sqliteDialect, sqliteDSN(raw), nil

	// lib/pq key=value form, e.g. "host=localhost dbname=training sslmode=disable"
	case strings.Contains(lower, "host=") || strings.Contains(lower, "dbname="):
		return postgresDialect, raw, nil
	}

	return dialect{}, "", fmt.Errorf("unsupported database url %q: expected postgres://, mysql://, sqlite:// or a .db path", raw)
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_pragma=foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
