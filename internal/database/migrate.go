package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"studyhub/internal/config"
	"studyhub/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

var ensureMigrationsTable = map[string]string{
	config.DriverPostgres: `CREATE TABLE IF NOT EXISTS schema_migrations (version BIGINT PRIMARY KEY, applied_at TIMESTAMP NOT NULL)`,
	// ORA-00955: name is already used by an existing object
	config.DriverOracle: `BEGIN
  EXECUTE IMMEDIATE 'CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, applied_at TIMESTAMP NOT NULL)';
EXCEPTION
  WHEN OTHERS THEN
    IF SQLCODE != -955 THEN RAISE; END IF;
END;`,
}

// Migrator applies the embedded up migrations for one SQL dialect.
// Files follow the golang-migrate naming scheme: {version}_{title}.up.sql.
type Migrator struct {
	db      *sqlx.DB
	dialect string
	src     source.Driver
}

// NewMigrator reads migrations/<dialect> from the embedded files.
func NewMigrator(db *sqlx.DB, dialect string) (*Migrator, error) {
	return NewMigratorFromFS(db, dialect, migrationsFS, "migrations/"+dialect)
}

func NewMigratorFromFS(db *sqlx.DB, dialect string, fsys fs.FS, dir string) (*Migrator, error) {
	if _, ok := ensureMigrationsTable[dialect]; !ok {
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
	src, err := iofs.New(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("could not open migration source %s: %w", dir, err)
	}
	return &Migrator{db: db, dialect: dialect, src: src}, nil
}

func (m *Migrator) Close() error {
	return m.src.Close()
}

// Up applies every migration not yet recorded in schema_migrations and
// returns how many were applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	l := logger.Get()

	if _, err := m.db.ExecContext(ctx, ensureMigrationsTable[m.dialect]); err != nil {
		return 0, fmt.Errorf("could not create schema_migrations: %w", err)
	}

	var versions []int64
	if err := m.db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations`); err != nil {
		return 0, fmt.Errorf("could not read applied migrations: %w", err)
	}
	applied := make(map[uint]bool, len(versions))
	for _, v := range versions {
		applied[uint(v)] = true
	}

	count := 0
	version, err := m.src.First()
	for err == nil {
		if !applied[version] {
			ran, err := m.apply(ctx, version)
			if err != nil {
				return count, err
			}
			if ran {
				count++
			}
		}
		version, err = m.src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, fmt.Errorf("could not list migrations: %w", err)
	}

	l.Info("Migrations completed", zap.String("dialect", m.dialect), zap.Int("applied", count))
	return count, nil
}

// apply reports false for versions that only have a down file.
func (m *Migrator) apply(ctx context.Context, version uint) (bool, error) {
	r, identifier, err := m.src.ReadUp(version)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read migration %d: %w", version, err)
	}
	defer r.Close()

	body, err := io.ReadAll(r)
	if err != nil {
		return false, fmt.Errorf("could not read migration %d: %w", version, err)
	}

	for i, stmt := range splitStatements(string(body)) {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return false, fmt.Errorf("migration %d_%s statement %d failed: %w", version, identifier, i+1, err)
		}
	}

	insert := m.db.Rebind(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`)
	if _, err := m.db.ExecContext(ctx, insert, int64(version), time.Now().UTC()); err != nil {
		return false, fmt.Errorf("could not record migration %d: %w", version, err)
	}

	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
	return true, nil
}

// splitStatements splits a migration file on ";" and drops "--" comments.
// Oracle rejects a trailing semicolon on plain SQL statements.
func splitStatements(body string) []string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, part := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
