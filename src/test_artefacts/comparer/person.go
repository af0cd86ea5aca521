package comparer

import (
	"time"

	"personrefresh/src/domain/entities"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// PersonOptions compara pessoas tolerando a precisão de timestamps do banco,
// a ordem das chaves do documento bruto e slices nil vs vazios.
func PersonOptions(tolerance time.Duration) cmp.Options {
	return cmp.Options{
		TimeWithinTolerance(tolerance),
		JSONRawMessage(),
		cmpopts.EquateEmpty(),
	}
}

// StoredPersonOptions também ignora updated_at, que o banco reescreve a cada Save.
func StoredPersonOptions(tolerance time.Duration) cmp.Options {
	return append(PersonOptions(tolerance), IgnoreFieldsFor[entities.Person]("UpdatedAt"))
}
