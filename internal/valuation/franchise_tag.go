package valuation

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/dynastycap/capmanager/internal/models"
)

// TagResult is the computed franchise tag salary for a position.
type TagResult struct {
	Position     models.Position `json:"position"`
	Season       string          `json:"season"`
	PriorSeason  string          `json:"prior_season"`
	Salary       int             `json:"salary"`
	PoolSize     int             `json:"pool_size"`   // position-dependent K
	SampleSize   int             `json:"sample_size"` // qualifying contracts actually averaged
	UsedFallback bool            `json:"used_fallback"`
}

// FranchiseTag computes the tag salary for a position and season: the mean
// of the top-K active salaries at that position from the prior season's
// contracts, rounded up. K reflects roster depth (10 at QB/TE, 20 at RB/WR).
// With zero qualifying contracts the position average is returned as a
// structured fallback rather than an error.
func (e *Engine) FranchiseTag(ctx context.Context, pos models.Position, season string) (*TagResult, error) {
	profile := profileFor(pos)

	prior, err := priorSeason(season)
	if err != nil {
		return nil, err
	}

	contracts, err := e.contracts.ActiveByPositionForSeason(ctx, pos, prior)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s contracts for season %s: %w", pos, prior, err)
	}

	result := &TagResult{
		Position:    pos,
		Season:      season,
		PriorSeason: prior,
		PoolSize:    profile.TagPool,
	}

	if len(contracts) == 0 {
		result.Salary = profile.clamp(roundToInt(profile.DefaultAverage))
		result.UsedFallback = true
		return result, nil
	}

	// Contracts arrive salary descending; a pool smaller than K still
	// averages what exists.
	pool := contracts
	if len(pool) > profile.TagPool {
		pool = pool[:profile.TagPool]
	}

	total := 0
	for _, contract := range pool {
		total += contract.Salary
	}

	result.Salary = int(math.Ceil(float64(total) / float64(len(pool))))
	result.SampleSize = len(pool)
	return result, nil
}

func priorSeason(season string) (string, error) {
	year, err := strconv.Atoi(season)
	if err != nil {
		return "", fmt.Errorf("invalid season %q: %w", season, err)
	}
	return strconv.Itoa(year - 1), nil
}
