// Package database opens the SQLite file holding sessions and recent lookups.
package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"net/url"

	"github.com/Azterny/Brawl-Track-sub000/internal/config"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Connection parameters understood by go-sqlite3. They are applied to every
// connection the pool opens, unlike a one-off PRAGMA statement.
var connParams = map[string]string{
	"_journal_mode": "WAL",
	"_synchronous":  "NORMAL",
	"_busy_timeout": "5000",
	"_foreign_keys": "on",
	"_txlock":       "immediate",
}

func New(cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	return Open(cfg.DBPath, logger)
}

// Open connects to the SQLite file at path and brings its schema up to date.
func Open(path string, logger zerolog.Logger) (*sql.DB, error) {
	logger.Info().Str("path", path).Msg("opening session database")

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(constants.DBMaxOpenConns)
	db.SetMaxIdleConns(constants.DBMaxIdleConns)
	db.SetConnMaxLifetime(constants.DBConnMaxLifetime)
	db.SetConnMaxIdleTime(constants.DBMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()

	if err := Check(ctx, db); err != nil {
		db.Close()
		logger.Error().Err(err).Str("path", path).Msg("database unavailable")
		return nil, err
	}
	if err := migrate(db, logger); err != nil {
		db.Close()
		logger.Error().Err(err).Msg("failed to run migrations")
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err == nil {
		logger.Debug().Str("journal_mode", mode).Msg("database ready")
	}
	return db, nil
}

// Check reports whether the database answers queries.
func Check(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to reach database: %w", err)
	}
	return nil
}

func dsn(path string) string {
	q := url.Values{}
	for k, v := range connParams {
		q.Set(k, v)
	}
	return "file:" + path + "?" + q.Encode()
}

func migrate(db *sql.DB, logger zerolog.Logger) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return err
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return err
	}
	logger.Info().Int64("version", version).Msg("schema up to date")
	return nil
}
