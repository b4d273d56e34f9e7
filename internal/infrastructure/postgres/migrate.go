package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/tern/v2/migrate"

	"github.com/jhoicas/procura-api/pkg/logger"
)

// SchemaVersionTable tabla donde tern guarda la versión aplicada.
const SchemaVersionTable = "schema_version"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// migrationFiles expone los scripts NNN_nombre.sql en la raíz, como los espera tern.
func migrationFiles() (fs.FS, error) {
	return fs.Sub(migrationsFS, "migrations")
}

// Migrate lleva el esquema a la última versión embebida.
// tern toma un advisory lock y corre cada script en su propia transacción.
func Migrate(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire migration conn: %w", err)
	}
	defer conn.Release()

	m, err := migrate.NewMigrator(ctx, conn.Conn(), SchemaVersionTable)
	if err != nil {
		return fmt.Errorf("new migrator: %w", err)
	}
	files, err := migrationFiles()
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	if err := m.LoadMigrations(files); err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	m.OnStart = func(sequence int32, name, direction, _ string) {
		log.Info().Int32("version", sequence).Str("migration", name).Str("direction", direction).Msg("aplicando migración")
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	version, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("schema version: %w", err)
	}
	log.Info().Int32("version", version).Int("available", len(m.Migrations)).Msg("esquema al día")
	return nil
}
