package repositories

import (
	"context"
	"fmt"
	"time"

	"personrefresh/src/domain"
	"personrefresh/src/domain/entities"
	"personrefresh/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const personColumns = `
	id, first_name, last_name, linkedin_url,
	description, skills, education, experience, location, job_title,
	linkedin_profile, linkedin_last_fetched, created_at, updated_at`

type PersonRepository struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
}

func NewPersonRepository(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *PersonRepository {
	return &PersonRepository{readPool: readPool, writePool: writePool}
}

// FindRefreshCandidates returns every person with a non-empty linkedin URL
// that was never fetched or was last fetched before cutoff, ordered by id.
func (r *PersonRepository) FindRefreshCandidates(ctx context.Context, cutoff time.Time) ([]entities.Person, error) {
	query := `
		SELECT ` + personColumns + `
		FROM
			people
		WHERE
			linkedin_url IS NOT NULL
			AND linkedin_url <> ''
			AND (linkedin_last_fetched IS NULL OR linkedin_last_fetched < $1)
		ORDER BY
			id`

	rows, err := r.readPool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query refresh candidates: %w", err)
	}
	defer rows.Close()

	people := make([]entities.Person, 0)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan refresh candidate: %w", err)
		}
		people = append(people, person)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate refresh candidates: %w", err)
	}

	return people, nil
}

// Save writes the refresh-owned columns of person in a single statement and
// returns the row as persisted.
func (r *PersonRepository) Save(ctx context.Context, person entities.Person) (entities.Person, error) {
	query := `
		UPDATE people SET
			linkedin_url = $2,
			description = $3,
			skills = $4,
			education = $5,
			experience = $6,
			location = $7,
			job_title = $8,
			linkedin_profile = $9,
			linkedin_last_fetched = $10,
			updated_at = NOW()
		WHERE
			id = $1
		RETURNING ` + personColumns

	row := r.writePool.QueryRow(ctx, query,
		person.ID,
		postgres.NewNullString(&person.LinkedinURL),
		postgres.NewNullString(&person.Description),
		person.Skills,
		person.Education,
		person.Experience,
		postgres.NewNullString(&person.Location),
		postgres.NewNullString(&person.JobTitle),
		postgres.NewNullJSON(person.Metadata.LinkedinProfile),
		postgres.NewNullTime(person.Metadata.LinkedinLastFetched),
	)

	saved, err := scanPerson(row)
	if postgres.IsNoRows(err) {
		return entities.Person{}, fmt.Errorf("person %d: %w", person.ID, domain.ErrPersonNotFound)
	}
	if err != nil {
		return entities.Person{}, fmt.Errorf("failed to save person %d: %w", person.ID, err)
	}

	return saved, nil
}

func scanPerson(row pgx.Row) (entities.Person, error) {
	var (
		person                           entities.Person
		firstName, lastName, linkedinURL *string
		description, location, jobTitle  *string
		linkedinProfile                  []byte
	)

	err := row.Scan(
		&person.ID,
		&firstName,
		&lastName,
		&linkedinURL,
		&description,
		&person.Skills,
		&person.Education,
		&person.Experience,
		&location,
		&jobTitle,
		&linkedinProfile,
		&person.Metadata.LinkedinLastFetched,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		return entities.Person{}, err
	}

	person.FirstName = deref(firstName)
	person.LastName = deref(lastName)
	person.LinkedinURL = deref(linkedinURL)
	person.Description = deref(description)
	person.Location = deref(location)
	person.JobTitle = deref(jobTitle)
	if len(linkedinProfile) > 0 {
		person.Metadata.LinkedinProfile = linkedinProfile
	}

	return person, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
