package refresh

import (
	"fmt"

	"personrefresh/src/domain"
)

const (
	unknownFieldOfStudy = "Unknown Field of Study"
	unknownDegree       = "Unknown Degree"
	unknown             = "Unknown"
)

// NormalizeProfile maps an external profile onto the canonical person fields.
// Empty values never appear in the result: they are left absent.
func NormalizeProfile(profile domain.ExternalProfile) domain.ProfileUpdate {
	description := profile.Summary.String()
	if description == "" {
		description = profile.Description.String()
	}

	return domain.ProfileUpdate{
		Description: optionalString(description),
		Skills:      normalizeSkills(profile.Skills),
		Education:   normalizeEducation(profile.Education),
		Experience:  normalizeExperience(profile.Experience),
		Location:    optionalString(profile.Location.String()),
		JobTitle:    optionalString(currentJobTitle(profile.Experience)),
	}
}

// Ordem da primeira ocorrência, sem duplicados.
func normalizeSkills(entries []domain.SkillEntry) []string {
	var skills []string
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		skill := entry.Skill.String()
		if skill == "" {
			continue
		}
		if _, ok := seen[skill]; ok {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}

	return skills
}

func normalizeEducation(entries []domain.EducationEntry) []string {
	var education []string

	for _, entry := range entries {
		education = append(education, fmt.Sprintf("%s - %s, %s (%s - %s)",
			entry.SchoolName,
			orDefault(entry.FieldOfStudy.String(), unknownFieldOfStudy),
			orDefault(entry.Degree.String(), unknownDegree),
			orDefault(entry.StartDate.String(), unknown),
			orDefault(entry.EndDate.String(), unknown),
		))
	}

	return education
}

func normalizeExperience(entries []domain.ExperienceEntry) []string {
	var experience []string

	for _, entry := range entries {
		experience = append(experience, fmt.Sprintf("%s, %s (%s - %s)",
			entry.Title,
			entry.Company,
			orDefault(entry.StartDate.String(), unknown),
			orDefault(entry.EndDate.String(), unknown),
		))
	}

	return experience
}

// The first entry flagged current wins.
func currentJobTitle(entries []domain.ExperienceEntry) string {
	for _, entry := range entries {
		if entry.IsCurrent {
			return entry.Title.String()
		}
	}
	return ""
}

func orDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
