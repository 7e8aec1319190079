package valuation

import (
	"github.com/dynastycap/capmanager/internal/models"
)

// positionProfile holds the per-position valuation constants: the salary
// bounds every estimate is clamped to, the PPG multiplier for the quick
// estimate and the no-comparables fallback, the comparable window half-width,
// the franchise tag pool size, and the default average salary used when a
// position has no active contracts at all.
type positionProfile struct {
	MinSalary      int
	MaxSalary      int
	Multiplier     float64
	Window         float64
	TagPool        int
	DefaultAverage float64
}

var positionProfiles = map[models.Position]positionProfile{
	// Quarterbacks score with higher variance, hence the wider window.
	models.PositionQB: {MinSalary: 1, MaxSalary: 80, Multiplier: 3.0, Window: 3.0, TagPool: 10, DefaultAverage: 28},
	models.PositionRB: {MinSalary: 1, MaxSalary: 70, Multiplier: 2.5, Window: 2.0, TagPool: 20, DefaultAverage: 22},
	models.PositionWR: {MinSalary: 1, MaxSalary: 70, Multiplier: 2.5, Window: 2.0, TagPool: 20, DefaultAverage: 20},
	models.PositionTE: {MinSalary: 1, MaxSalary: 50, Multiplier: 2.0, Window: 2.0, TagPool: 10, DefaultAverage: 12},
}

func profileFor(pos models.Position) positionProfile {
	if p, ok := positionProfiles[pos]; ok {
		return p
	}
	// Unknown positions get the flex profile so callers never divide by zero.
	return positionProfiles[models.PositionWR]
}

func (p positionProfile) clamp(salary int) int {
	if salary < p.MinSalary {
		return p.MinSalary
	}
	if salary > p.MaxSalary {
		return p.MaxSalary
	}
	return salary
}
