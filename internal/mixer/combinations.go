// Package mixer turns scored legs into ranked tickets: it enumerates a
// bounded number of fixed-size leg combinations, scores each into a
// ticket, and keeps the top few by average confidence.
package mixer

import "github.com/mvlatkovic/betmixer/internal/domain"

// Combinations enumerates size-length tuples of distinct indices i<j<k…
// over legs in input order, stopping as soon as target tuples exist. The
// cutoff applies at every nesting level, so this is lexicographic prefix
// enumeration: legs earlier in the input appear in far more tuples than
// later ones. With the rule engine sorting by league weight first, the
// bias compounds toward flagship-league legs.
//
// Legs within one tuple are not required to come from distinct fixtures.
func Combinations(legs []domain.Leg, target, size int) [][]domain.Leg {
	if target <= 0 || size <= 0 || size > len(legs) {
		return nil
	}

	combos := make([][]domain.Leg, 0, target)
	pick := make([]domain.Leg, 0, size)

	var walk func(start int)
	walk = func(start int) {
		if len(pick) == size {
			combos = append(combos, append([]domain.Leg(nil), pick...))
			return
		}
		for i := start; i < len(legs) && len(combos) < target; i++ {
			pick = append(pick, legs[i])
			walk(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	walk(0)

	return combos
}
