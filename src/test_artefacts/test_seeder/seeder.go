package test_seeder

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Tabelas criadas pelas migrations em infra/postgres/migrations, fora a de
// controle do golang-migrate.
const peopleTable = "people"

// TestSeeder writes and reads fixtures straight from the people table,
// bypassing the repository under test.
type TestSeeder struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) TestSeeder {
	return TestSeeder{pool: pool}
}

// ResetPeople empties the people table and restarts its id sequence, so the
// first person inserted by a test gets id 1.
func (ts TestSeeder) ResetPeople(ctx context.Context) {
	_, err := ts.pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", peopleTable))
	if err != nil {
		panic(fmt.Sprintf("Failed to reset %s: %v", peopleTable, err))
	}
}

// SchemaVersion reads the version golang-migrate recorded and whether the last
// migration was left half applied.
func (ts TestSeeder) SchemaVersion(ctx context.Context) (version int64, dirty bool) {
	err := ts.pool.QueryRow(ctx, `SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
	if err != nil {
		panic(fmt.Sprintf("Failed to read schema version: %v", err))
	}
	return version, dirty
}
