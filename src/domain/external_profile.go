package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ExternalProfile is the typed view over a raw profile document returned by
// the external profile service. Only the fields used by normalization are
// decoded; the raw bytes are kept separately for provenance.
type ExternalProfile struct {
	PublicProfileURL string            `json:"publicProfileUrl"`
	Summary          Text              `json:"summary"`
	Description      Text              `json:"description"`
	Location         Text              `json:"location"`
	Skills           []SkillEntry      `json:"skills"`
	Education        []EducationEntry  `json:"education"`
	Experience       []ExperienceEntry `json:"experience"`
}

type SkillEntry struct {
	Skill Text `json:"skill"`
}

// Alguns documentos trazem skills como escalares simples.
func (s *SkillEntry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		return s.Skill.UnmarshalJSON(data)
	}

	type plain SkillEntry
	var entry plain
	if err := json.Unmarshal(data, &entry); err != nil {
		return err
	}
	*s = SkillEntry(entry)
	return nil
}

type EducationEntry struct {
	SchoolName   Text `json:"schoolName"`
	FieldOfStudy Text `json:"fieldOfStudy"`
	Degree       Text `json:"degree"`
	StartDate    Year `json:"startDate"`
	EndDate      Year `json:"endDate"`
}

type ExperienceEntry struct {
	Title     Text `json:"title"`
	Company   Text `json:"company"`
	StartDate Text `json:"startDate"`
	EndDate   Text `json:"endDate"`
	IsCurrent Flag `json:"isCurrent"`
}

// Text decodes any JSON scalar into its textual form. null decodes to "".
// Objects of the form {"year": .., "month": ..} decode to "month/year"; any
// other object is rejected.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(data, &fields); err != nil {
			return err
		}
		if _, ok := fields["year"]; !ok {
			return fmt.Errorf("unexpected object %s", truncate(string(data), 64))
		}

		var date struct {
			Year  Text `json:"year"`
			Month Text `json:"month"`
		}
		if err := json.Unmarshal(data, &date); err != nil {
			return err
		}
		switch {
		case date.Year == "":
			*t = ""
		case date.Month == "":
			*t = date.Year
		default:
			*t = Text(fmt.Sprintf("%s/%s", date.Month, date.Year))
		}
	case '[':
		return fmt.Errorf("unexpected array %s", data)
	default:
		*t = Text(data)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Flag decodes booleans sent as true/false, as strings ("true", "1") or as
// numbers. null and unrecognised strings decode to false.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = false
		return nil
	}

	switch data[0] {
	case '{', '[':
		return fmt.Errorf("unexpected flag %s", truncate(string(data), 64))
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		value, err := strconv.ParseBool(strings.TrimSpace(s))
		*f = Flag(err == nil && value)
	default:
		if value, err := strconv.ParseBool(string(data)); err == nil {
			*f = Flag(value)
			return nil
		}
		number, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("unexpected flag %s", data)
		}
		*f = number != 0
	}
	return nil
}

// Year decodes either {"year": ..} or a bare scalar into the year text.
type Year string

func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var date struct {
			Year Text `json:"year"`
		}
		if err := json.Unmarshal(data, &date); err != nil {
			return err
		}
		*y = Year(date.Year)
		return nil
	}

	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*y = Year(t)
	return nil
}

func (y Year) String() string {
	return string(y)
}

// DecodeExternalProfile parses a raw profile document. Anything that is not a
// JSON object is rejected with ErrMalformedProfile.
func DecodeExternalProfile(raw json.RawMessage) (ExternalProfile, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ExternalProfile{}, fmt.Errorf("%w: expected a JSON object, got %q", ErrMalformedProfile, truncate(string(trimmed), 64))
	}

	var profile ExternalProfile
	if err := json.Unmarshal(trimmed, &profile); err != nil {
		return ExternalProfile{}, fmt.Errorf("%w: %v", ErrMalformedProfile, err)
	}

	profile.PublicProfileURL = strings.TrimSpace(profile.PublicProfileURL)
	return profile, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
