package entities

import (
	"encoding/json"
	"time"
)

// Pessoa acompanhada pelo refresh de perfil externo.
type Person struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	LinkedinURL string `json:"linkedin_url,omitempty"`

	// Campos canônicos; string vazia ou slice nil significa ausente.
	Description string   `json:"description,omitempty"`
	Skills      []string `json:"skills,omitempty"`
	Education   []string `json:"education,omitempty"`
	Experience  []string `json:"experience,omitempty"`
	Location    string   `json:"location,omitempty"`
	JobTitle    string   `json:"job_title,omitempty"`

	Metadata  PersonMetadata `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PersonMetadata holds the provenance of the last successful profile fetch.
type PersonMetadata struct {
	// Documento bruto exatamente como veio do serviço externo.
	LinkedinProfile     json.RawMessage `json:"linkedin_profile,omitempty"`
	LinkedinLastFetched *time.Time      `json:"linkedin_last_fetched,omitempty"`
}

// IsEligibleForRefresh reports whether the person has a linked profile URL and
// either was never fetched or was last fetched before now-threshold.
func (p Person) IsEligibleForRefresh(now time.Time, threshold time.Duration) bool {
	if p.LinkedinURL == "" {
		return false
	}

	lastFetched := p.Metadata.LinkedinLastFetched
	return lastFetched == nil || lastFetched.Before(now.Add(-threshold))
}
