package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/simaogato/transfermarket-backend/internal/domain"
)

// PostgreSQL error codes mapped onto domain errors
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// Options tunes the connection pool
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=transfermarket sslmode=disable"
func NewDB(connectionString string, opts Options) (*DB, error) {
	if connectionString == "" {
		return nil, errors.New("database connection string is required")
	}

	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Wrap adopts an already opened *sql.DB
func Wrap(db *sql.DB) *DB {
	return &DB{DB: db}
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// conn returns the transaction bound to ctx, or the pool when there is none
func (db *DB) conn(ctx context.Context) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db.DB
}

// forUpdate returns the row-locking suffix for reads that happen inside a transaction.
// Rows read during a unit of work stay locked until it commits or rolls back.
func forUpdate(ctx context.Context) string {
	if _, ok := txFromContext(ctx); ok {
		return " FOR UPDATE"
	}
	return ""
}

// translateError maps constraint violations onto domain errors
func translateError(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return fmt.Errorf("%w: %s violates %s", domain.ErrStateConflict, action, pqErr.Constraint)
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s violates %s", domain.ErrStateConflict, action, pqErr.Constraint)
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
