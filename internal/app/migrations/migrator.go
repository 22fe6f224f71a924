package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var files embed.FS

// VersionTable records the applied schema version
const VersionTable = "schema_version"

// Migrator applies the embedded schema migrations
type Migrator struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool, log zerolog.Logger) *Migrator {
	return &Migrator{
		db:  db,
		log: log,
	}
}

// Source returns the embedded migration files, rooted at the migration directory.
func Source() (fs.FS, error) {
	return fs.Sub(files, "sql")
}

// Migrate brings the schema to the latest embedded version on a single pooled connection.
func (m *Migrator) Migrate(ctx context.Context) error {
	return m.MigrateTo(ctx, -1)
}

// MigrateTo moves the schema to targetVersion. A negative target means the latest version;
// zero rolls every migration back.
func (m *Migrator) MigrateTo(ctx context.Context, targetVersion int32) error {
	conn, err := m.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire migration connection: %w", err)
	}
	defer conn.Release()

	migrator, err := tern.NewMigrator(ctx, conn.Conn(), VersionTable)
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	source, err := Source()
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := migrator.LoadMigrations(source); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := migrator.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if targetVersion < 0 {
		targetVersion = int32(len(migrator.Migrations))
	}

	if from == targetVersion {
		m.log.Info().Int32("version", from).Msg("Database schema up to date")
		return nil
	}

	if err := migrator.MigrateTo(ctx, targetVersion); err != nil {
		return fmt.Errorf("applying database migrations: %w", err)
	}

	m.log.Info().Int32("from", from).Int32("to", targetVersion).Msg("Database schema migrated")
	return nil
}
