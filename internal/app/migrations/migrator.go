package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/yigit/university/internal/db"
	"github.com/yigit/university/internal/pkg/dberrors"
)

//go:embed sql/*.sql
var schemaFiles embed.FS

// Migrator applies the embedded schema files, each at most once.
type Migrator struct {
	db     db.Database
	files  fs.FS
	logger zerolog.Logger
}

// NewMigrator creates a migrator over the embedded university schema.
func NewMigrator(database db.Database, lgr zerolog.Logger) *Migrator {
	sub, err := fs.Sub(schemaFiles, "sql")
	if err != nil {
		// sql/ is embedded at compile time
		panic(err)
	}
	return NewMigratorFS(database, sub, lgr)
}

// NewMigratorFS creates a migrator reading *.sql files from the root of files.
func NewMigratorFS(database db.Database, files fs.FS, lgr zerolog.Logger) *Migrator {
	return &Migrator{
		db:     database,
		files:  files,
		logger: lgr,
	}
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return dberrors.Classify(err, "failed to create migration tracking table")
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`
	if err := m.db.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, dberrors.Classify(err, "failed to check migration status")
	}
	return exists, nil
}

// Versions lists the migration versions in apply order. "001_university.sql" is version "001".
func (m *Migrator) Versions() ([]string, error) {
	names, err := m.sqlFiles()
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(names))
	for _, name := range names {
		versions = append(versions, versionOf(name))
	}
	return versions, nil
}

func (m *Migrator) sqlFiles() ([]string, error) {
	entries, err := fs.ReadDir(m.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration files: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func versionOf(filename string) string {
	return strings.Split(path.Base(filename), "_")[0]
}

// Migrate applies every pending schema file in order. Each file runs in its own
// transaction together with its schema_migrations record.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	names, err := m.sqlFiles()
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := m.apply(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

func (m *Migrator) apply(ctx context.Context, name string) error {
	version := versionOf(name)

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		m.logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(m.files, name)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}

	err = db.WithTransaction(ctx, m.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(content)); err != nil {
			return dberrors.Classify(err, "error occurred during SQL migration execution")
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			return dberrors.Classify(err, "failed to record migration")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("migration %s: %w", name, err)
	}

	m.logger.Info().Str("migration", name).Msg("Migration applied")
	return nil
}
