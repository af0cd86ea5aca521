package test_seeder

import (
	"context"
	"fmt"

	"personrefresh/src/domain/entities"
	"personrefresh/src/infra/postgres"
)

// InsertPerson writes every column of person, metadata included, and sets its ID.
func (ts TestSeeder) InsertPerson(ctx context.Context, person *entities.Person) {
	query := `
		INSERT INTO people (
			first_name, last_name, linkedin_url, description, skills, education, experience,
			location, job_title, linkedin_profile, linkedin_last_fetched, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		postgres.NewNullString(&person.FirstName),
		postgres.NewNullString(&person.LastName),
		postgres.NewNullString(&person.LinkedinURL),
		postgres.NewNullString(&person.Description),
		person.Skills,
		person.Education,
		person.Experience,
		postgres.NewNullString(&person.Location),
		postgres.NewNullString(&person.JobTitle),
		postgres.NewNullJSON(person.Metadata.LinkedinProfile),
		postgres.NewNullTime(person.Metadata.LinkedinLastFetched),
		person.CreatedAt,
		person.UpdatedAt,
	).Scan(&person.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertPerson failed: %v", err))
	}
}
