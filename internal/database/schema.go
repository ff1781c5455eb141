package database

import (
	"context"
	"fmt"
	"log"

	_ "embed"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Bootstrap applies the embedded schema. All statements are idempotent
// (IF NOT EXISTS), so running it on every startup is safe.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Println("Database schema applied")
	return nil
}
