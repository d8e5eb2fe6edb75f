package roster

import (
	"github.com/brianvoe/gofakeit/v7"

	"github.com/hqin/oicoach/internal/domain/randx"
)

// Starter attribute ranges for generated rosters.
const (
	starterSkillMin   = 35
	starterSkillMax   = 70
	starterMentalMin  = 40
	starterMentalMax  = 80
	starterComfortMin = 40
	starterComfortMax = 70
)

// Generate builds a roster of n fresh competitors with fake names and
// randomized starter attributes. Name collisions are retried so the
// uniqueness invariant holds.
func Generate(src *randx.Source, n int) (*Roster, error) {
	if n < 1 {
		return nil, ErrEmptyRoster
	}
	r := &Roster{
		members: make([]*Competitor, 0, n),
		byName:  make(map[string]*Competitor, n),
	}
	for len(r.members) < n {
		c := NewCompetitor(
			gofakeit.Name(),
			src.Uniform(starterSkillMin, starterSkillMax),
			src.Uniform(starterSkillMin, starterSkillMax),
			src.Uniform(starterMentalMin, starterMentalMax),
		)
		c.SetComfort(src.Uniform(starterComfortMin, starterComfortMax))
		if err := r.Add(c); err != nil {
			continue // duplicate fake name, draw again
		}
	}
	return r, nil
}
