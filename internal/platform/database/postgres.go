package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/Parth2500/Jwt-Auth/internal/platform/database/migrations"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/pressly/goose/v3"
)

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// ConnectPostgres opens and pings a pgx-backed pool. With migrate set the
// embedded schema migrations are applied before returning.
func ConnectPostgres(ctx context.Context, dsn string, migrate bool) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	log.Println("Successfully connected to PostgreSQL database!")

	if migrate {
		if err := runMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Println("PostgreSQL migrations applied.")
	}
	return db, nil
}
