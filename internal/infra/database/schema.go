package database

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL,
		phone                TEXT NOT NULL,
		email                TEXT,
		category             TEXT NOT NULL,
		business_description TEXT,
		browser              TEXT,
		user_agent           TEXT,
		phone_model          TEXT,
		status               TEXT NOT NULL DEFAULT 'NEW',
		is_abandoned         BOOLEAN NOT NULL DEFAULT FALSE,
		abandoned_at         TIMESTAMPTZ,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_phone_created ON leads (phone, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_email ON leads (email)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_created ON leads (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id             TEXT PRIMARY KEY,
		email          TEXT NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		password_hash  TEXT NOT NULL,
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL,
		phone                TEXT NOT NULL,
		email                TEXT,
		category             TEXT NOT NULL,
		business_description TEXT,
		browser              TEXT,
		user_agent           TEXT,
		phone_model          TEXT,
		status               TEXT NOT NULL DEFAULT 'NEW',
		is_abandoned         BOOLEAN NOT NULL DEFAULT 0,
		abandoned_at         DATETIME,
		created_at           DATETIME NOT NULL,
		updated_at           DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_phone_created ON leads (phone, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_email ON leads (email)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_created ON leads (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS admin_users (
		id             TEXT PRIMARY KEY,
		email          TEXT NOT NULL UNIQUE,
		name           TEXT NOT NULL,
		password_hash  TEXT NOT NULL,
		email_verified BOOLEAN NOT NULL DEFAULT 0,
		created_at     DATETIME NOT NULL,
		updated_at     DATETIME NOT NULL
	)`,
}

// Migrate cria as tabelas se ainda não existirem.
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts := postgresSchema
	if dialect == SQLite {
		stmts = sqliteSchema
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro na migração (%s): %w", dialect, err)
		}
	}
	return nil
}
