package domain

import (
	"errors"
	"personrefresh/src/domain/entities"
)

var (
	// Falhas locais ao item: viram RefreshOutcome com status failed.
	ErrProfileFetch  = errors.New("profile fetch failed")
	ErrPersonPersist = errors.New("person persist failed")

	// Falha fatal para o lote inteiro.
	ErrCandidateQuery = errors.New("refresh candidate query failed")

	// Credenciais configuradas e recusadas pelo serviço externo.
	ErrSessionRejected = errors.New("external session rejected")

	ErrPersonNotFound   = errors.New("person not found")
	ErrMalformedProfile = errors.New("malformed external profile")
)

// ############################################################
// ################ RESULTADO DO REFRESH ######################
// ############################################################

type OutcomeStatus string

const (
	OutcomeUpdated OutcomeStatus = "updated"
	OutcomeFailed  OutcomeStatus = "failed"
)

// RefreshOutcome is the per-candidate result of a refresh attempt. Person is
// set only when Status is OutcomeUpdated; Err only when it is OutcomeFailed.
type RefreshOutcome struct {
	PersonID int64
	Status   OutcomeStatus
	Person   *entities.Person
	Err      error
}

func UpdatedOutcome(person entities.Person) RefreshOutcome {
	return RefreshOutcome{
		PersonID: person.ID,
		Status:   OutcomeUpdated,
		Person:   &person,
	}
}

func FailedOutcome(personID int64, err error) RefreshOutcome {
	return RefreshOutcome{
		PersonID: personID,
		Status:   OutcomeFailed,
		Err:      err,
	}
}

func (o RefreshOutcome) Succeeded() bool {
	return o.Status == OutcomeUpdated
}

// CountOutcomes splits a batch result into updated and failed totals.
func CountOutcomes(outcomes []RefreshOutcome) (updated int, failed int) {
	for _, outcome := range outcomes {
		switch outcome.Status {
		case OutcomeUpdated:
			updated++
		case OutcomeFailed:
			failed++
		}
	}
	return updated, failed
}

// ############################################################
// ############ ATUALIZAÇÃO PARCIAL DO PERFIL #################
// ############################################################

// ProfileUpdate carries the normalized fields of an external profile. A nil
// pointer or nil slice means the field is absent and must not be written.
type ProfileUpdate struct {
	Description *string
	Skills      []string
	Education   []string
	Experience  []string
	Location    *string
	JobTitle    *string
}

// ApplyTo overwrites only the fields present in the update.
func (u ProfileUpdate) ApplyTo(person *entities.Person) {
	if u.Description != nil {
		person.Description = *u.Description
	}
	if u.Skills != nil {
		person.Skills = append([]string(nil), u.Skills...)
	}
	if u.Education != nil {
		person.Education = append([]string(nil), u.Education...)
	}
	if u.Experience != nil {
		person.Experience = append([]string(nil), u.Experience...)
	}
	if u.Location != nil {
		person.Location = *u.Location
	}
	if u.JobTitle != nil {
		person.JobTitle = *u.JobTitle
	}
}

// Fields lists the names of the fields present in the update, in a fixed order.
func (u ProfileUpdate) Fields() []string {
	fields := make([]string, 0, 6)
	if u.Description != nil {
		fields = append(fields, "description")
	}
	if u.Skills != nil {
		fields = append(fields, "skills")
	}
	if u.Education != nil {
		fields = append(fields, "education")
	}
	if u.Experience != nil {
		fields = append(fields, "experience")
	}
	if u.Location != nil {
		fields = append(fields, "location")
	}
	if u.JobTitle != nil {
		fields = append(fields, "job_title")
	}
	return fields
}
