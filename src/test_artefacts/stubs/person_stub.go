package stubs

import (
	"encoding/json"
	"time"

	"personrefresh/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type PersonStub struct {
	person entities.Person
}

// NewPersonStub returns a person eligible for refresh: linked URL, never fetched.
func NewPersonStub() PersonStub {
	now := time.Now().UTC()

	person := entities.Person{
		ID:          gofakeit.Int64(),
		FirstName:   gofakeit.FirstName(),
		LastName:    gofakeit.LastName(),
		LinkedinURL: "https://www.linkedin.com/in/" + gofakeit.Username(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return PersonStub{person: person}
}

func (ps PersonStub) WithID(id int64) PersonStub {
	ps.person.ID = id
	return ps
}

func (ps PersonStub) WithLinkedinURL(url string) PersonStub {
	ps.person.LinkedinURL = url
	return ps
}

func (ps PersonStub) WithDescription(description string) PersonStub {
	ps.person.Description = description
	return ps
}

func (ps PersonStub) WithSkills(skills ...string) PersonStub {
	ps.person.Skills = skills
	return ps
}

func (ps PersonStub) WithLocation(location string) PersonStub {
	ps.person.Location = location
	return ps
}

func (ps PersonStub) WithJobTitle(jobTitle string) PersonStub {
	ps.person.JobTitle = jobTitle
	return ps
}

func (ps PersonStub) WithLastFetched(lastFetched time.Time) PersonStub {
	ps.person.Metadata.LinkedinLastFetched = &lastFetched
	return ps
}

func (ps PersonStub) WithLinkedinProfile(profile map[string]interface{}) PersonStub {
	profileJSON, _ := json.Marshal(profile)
	ps.person.Metadata.LinkedinProfile = profileJSON
	return ps
}

func (ps PersonStub) Get() entities.Person {
	return ps.person
}
