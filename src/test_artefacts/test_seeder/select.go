package test_seeder

import (
	"context"
	"encoding/json"
	"time"

	"personrefresh/src/domain/entities"
)

func (ts TestSeeder) SelectPersonByID(ctx context.Context, id int64) (entities.Person, error) {
	query := `SELECT id, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(linkedin_url, ''),
			  COALESCE(description, ''), skills, education, experience,
			  COALESCE(location, ''), COALESCE(job_title, ''),
			  linkedin_profile, linkedin_last_fetched, created_at, updated_at
			  FROM people WHERE id = $1`

	var (
		person      entities.Person
		profile     []byte
		lastFetched *time.Time
	)

	err := ts.pool.QueryRow(ctx, query, id).Scan(
		&person.ID,
		&person.FirstName,
		&person.LastName,
		&person.LinkedinURL,
		&person.Description,
		&person.Skills,
		&person.Education,
		&person.Experience,
		&person.Location,
		&person.JobTitle,
		&profile,
		&lastFetched,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		return entities.Person{}, err
	}

	if len(profile) > 0 {
		person.Metadata.LinkedinProfile = json.RawMessage(profile)
	}
	person.Metadata.LinkedinLastFetched = lastFetched

	return person, nil
}

func (ts TestSeeder) CountPeople(ctx context.Context) int {
	var count int
	if err := ts.pool.QueryRow(ctx, `SELECT COUNT(*) FROM people`).Scan(&count); err != nil {
		panic(err)
	}
	return count
}
