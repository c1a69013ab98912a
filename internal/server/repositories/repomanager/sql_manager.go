// Package repomanager wires repository constructors, schema migrations (via
// goose) and database connections for the configured SQL dialect.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/LouisLiuNova/SyncHub/internal/server/migrations"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/clipboard"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/files"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/tags"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// SQLRepositoryManager vends SQL-backed repositories for one dialect.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	logger  logging.Logger
}

type Option func(*SQLRepositoryManager)

// WithLogger sets the logger that receives migration output.
func WithLogger(l logging.Logger) Option {
	return func(m *SQLRepositoryManager) {
		m.logger = l.With("module", "migrations")
	}
}

// NewSQLRepositoryManager constructs a RepositoryManager for dialect.
func NewSQLRepositoryManager(dialect dbx.Dialect, opts ...Option) *SQLRepositoryManager {
	m := &SQLRepositoryManager{dialect: dialect, logger: logging.Nop{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dialect reports the SQL dialect the manager was built for.
func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Tags(db dbx.DBTX) tags.Repository {
	return tags.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Clipboard(db dbx.DBTX) clipboard.Repository {
	return clipboard.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return files.NewSQLRepository(db, m.dialect)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, logger: m.logger})
	if err := goose.SetDialect(m.dialect.GooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, m.dialect.MigrationsDir()); err != nil {
		return err
	}
	return nil
}

// Open connects to the database and verifies the connection. SQLite is
// limited to a single connection: an in-memory database exists per
// connection, and writers serialize anyway.
func Open(ctx context.Context, dialect dbx.Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return db, nil
}
