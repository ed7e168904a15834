package seeder

import (
	"context"

	"iri-backend/internal/database"
)

// Seeder inserts reference data a fresh deployment needs. Each seeder
// must be idempotent so the runner can execute on every startup.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
