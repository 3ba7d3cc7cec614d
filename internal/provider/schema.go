package provider

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// schemaVersions holds the OMS replica DDL, one entry per version. The schema
// is small enough to live inline; each version is applied exactly once and
// recorded in hub_schema_migrations.
var schemaVersions = []struct {
	version string
	ddl     string
}{
	{
		version: "001_accounts_positions",
		ddl: `
			CREATE TABLE IF NOT EXISTS hub_accounts (
				account_id     TEXT PRIMARY KEY,
				client_id      TEXT NOT NULL,
				account_type   TEXT NOT NULL,
				status         TEXT NOT NULL,
				display_name   TEXT NOT NULL DEFAULT '',
				account_number TEXT NOT NULL DEFAULT '',
				current_value  NUMERIC(20, 4) NOT NULL DEFAULT 0,
				currency       TEXT NOT NULL DEFAULT 'USD',
				opened_date    TIMESTAMPTZ NOT NULL,
				last_updated   TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_hub_accounts_client ON hub_accounts (client_id);

			CREATE TABLE IF NOT EXISTS hub_positions (
				id                   BIGSERIAL PRIMARY KEY,
				account_id           TEXT NOT NULL REFERENCES hub_accounts (account_id),
				symbol               TEXT NOT NULL,
				instrument_name      TEXT NOT NULL DEFAULT '',
				asset_class          TEXT NOT NULL,
				quantity             NUMERIC(20, 8) NOT NULL,
				cost_basis_per_share NUMERIC(20, 4) NOT NULL,
				currency             TEXT NOT NULL DEFAULT 'USD'
			);
			CREATE INDEX IF NOT EXISTS idx_hub_positions_account ON hub_positions (account_id);
		`,
	},
}

// EnsureSchema brings the OMS replica schema up to date, applying any
// versions not yet recorded. Each version runs in its own transaction.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS hub_schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied := map[string]bool{}
	rows, err := pool.Query(ctx, "SELECT version FROM hub_schema_migrations")
	if err != nil {
		return fmt.Errorf("list applied versions: %w", err)
	}
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("scan version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list applied versions: %w", err)
	}
	rows.Close()

	for _, sv := range schemaVersions {
		if applied[sv.version] {
			log.Debug().Str("version", sv.version).Msg("schema version already applied, skipping")
			continue
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin transaction for %s: %w", sv.version, err)
		}
		if _, err := tx.Exec(ctx, sv.ddl); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("apply %s: %w", sv.version, err)
		}
		if _, err := tx.Exec(ctx,
			"INSERT INTO hub_schema_migrations (version) VALUES ($1)", sv.version,
		); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("record %s: %w", sv.version, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit %s: %w", sv.version, err)
		}

		log.Info().Str("version", sv.version).Msg("applied schema version")
	}

	return nil
}
