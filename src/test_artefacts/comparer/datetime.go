package comparer

import (
	"time"

	"github.com/google/go-cmp/cmp"
)

// TimeWithinTolerance iguala instantes próximos, em qualquer fuso. Datas
// vindas do postgres perdem a precisão de nanossegundos.
func TimeWithinTolerance(tolerance time.Duration) cmp.Option {
	return cmp.Comparer(func(x, y time.Time) bool {
		diff := x.Sub(y)
		if diff < 0 {
			diff = -diff
		}
		return diff <= tolerance
	})
}
