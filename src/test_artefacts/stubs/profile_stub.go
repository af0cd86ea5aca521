package stubs

import (
	"encoding/json"

	"github.com/go-faker/faker/v4"
)

// ProfileStub monta documentos brutos do serviço externo de perfis.
type ProfileStub struct {
	document map[string]interface{}
}

func NewProfileStub() ProfileStub {
	document := map[string]interface{}{
		"publicProfileUrl": "https://www.linkedin.com/in/" + faker.Username(),
		"summary":          faker.Sentence(),
		"location":         faker.Word(),
		"skills": []interface{}{
			map[string]interface{}{"skill": faker.Word()},
		},
		"education":  []interface{}{},
		"experience": []interface{}{},
	}

	return ProfileStub{document: document}
}

// NewEmptyProfileStub starts from an empty document.
func NewEmptyProfileStub() ProfileStub {
	return ProfileStub{document: map[string]interface{}{}}
}

func (ps ProfileStub) with(key string, value interface{}) ProfileStub {
	document := make(map[string]interface{}, len(ps.document)+1)
	for k, v := range ps.document {
		document[k] = v
	}
	document[key] = value
	return ProfileStub{document: document}
}

func (ps ProfileStub) WithPublicProfileURL(url string) ProfileStub {
	return ps.with("publicProfileUrl", url)
}

func (ps ProfileStub) WithSummary(summary string) ProfileStub {
	return ps.with("summary", summary)
}

func (ps ProfileStub) WithDescription(description string) ProfileStub {
	return ps.with("description", description)
}

func (ps ProfileStub) WithLocation(location string) ProfileStub {
	return ps.with("location", location)
}

func (ps ProfileStub) WithSkills(skills ...string) ProfileStub {
	entries := make([]interface{}, 0, len(skills))
	for _, skill := range skills {
		entries = append(entries, map[string]interface{}{"skill": skill})
	}
	return ps.with("skills", entries)
}

func (ps ProfileStub) WithEducation(entries ...map[string]interface{}) ProfileStub {
	return ps.with("education", toList(entries))
}

func (ps ProfileStub) WithExperience(entries ...map[string]interface{}) ProfileStub {
	return ps.with("experience", toList(entries))
}

func (ps ProfileStub) Without(key string) ProfileStub {
	document := make(map[string]interface{}, len(ps.document))
	for k, v := range ps.document {
		if k != key {
			document[k] = v
		}
	}
	return ProfileStub{document: document}
}

func (ps ProfileStub) Get() json.RawMessage {
	raw, _ := json.Marshal(ps.document)
	return raw
}

func toList(entries []map[string]interface{}) []interface{} {
	list := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		list = append(list, entry)
	}
	return list
}
