package comparer

import (
	"bytes"
	"encoding/json"

	"github.com/google/go-cmp/cmp"
)

// JSONRawMessage compara documentos pelo conteúdo: ordem de chaves e espaços
// não importam, e null equivale a vazio.
func JSONRawMessage() cmp.Option {
	return cmp.Comparer(func(x, y json.RawMessage) bool {
		if isEmptyJSON(x) || isEmptyJSON(y) {
			return isEmptyJSON(x) && isEmptyJSON(y)
		}

		var xDoc, yDoc any
		if err := json.Unmarshal(x, &xDoc); err != nil {
			return false
		}
		if err := json.Unmarshal(y, &yDoc); err != nil {
			return false
		}

		return cmp.Equal(xDoc, yDoc)
	})
}

func isEmptyJSON(document json.RawMessage) bool {
	trimmed := bytes.TrimSpace(document)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
