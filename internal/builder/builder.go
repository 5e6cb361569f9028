// Package builder derives candidate bet legs from fixtures. Each builder
// covers one market family, reads the single odds sub-record it cares
// about, and silently emits nothing when the fixture cannot support its
// market. The set is open: new builders only need to implement Builder and
// be registered.
package builder

import (
	"github.com/mvlatkovic/betmixer/internal/domain"
)

// Builder is the capability "fixture in, zero or more legs out".
type Builder interface {
	// Name identifies the builder for traceability; it is attached to every
	// leg the builder produces.
	Name() string
	// Build returns the candidate legs for one fixture. Missing markets,
	// missing identifying fields, and non-finite odds are soft skips: the
	// result is simply empty, never an error.
	Build(f domain.Fixture) []domain.Leg
}

// Registry holds builders in a fixed registration order. Output ordering
// is deterministic: fixture-major, builder-minor.
type Registry struct {
	builders []Builder
}

// NewRegistry creates a Registry running the given builders in order.
func NewRegistry(builders ...Builder) *Registry {
	return &Registry{builders: builders}
}

// Default returns the reference builder set in its canonical order.
func Default() *Registry {
	return NewRegistry(
		DrawSafety{},
		FirstHalfGoals{},
		UnderSafe{},
		BTTSStrict{},
	)
}

// Names returns the registered builder names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for _, b := range r.builders {
		names = append(names, b.Name())
	}
	return names
}

// Run applies every builder to every fixture and concatenates the results
// into one flat list. No deduplication happens at this stage.
func (r *Registry) Run(fixtures []domain.Fixture) []domain.Leg {
	var legs []domain.Leg
	for _, f := range fixtures {
		for _, b := range r.builders {
			for _, leg := range b.Build(f) {
				leg.Builder = b.Name()
				legs = append(legs, leg)
			}
		}
	}
	return legs
}
