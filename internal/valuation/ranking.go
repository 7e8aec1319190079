package valuation

import (
	"context"
	"fmt"
	"math"
	"sort"
)

const (
	legendaryRankCutoff = 10
	legendaryMinPPG     = 10.0
)

// RankLeague evaluates every active, non-zero-salary contract and ranks them
// by value score, best deal first. Runs sequentially so reasoning strings and
// rank assignment stay deterministic; at league scale (tens of contracts)
// parallelism buys nothing.
func (e *Engine) RankLeague(ctx context.Context, season string) ([]Evaluation, error) {
	contracts, err := e.contracts.ActiveContracts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load league contracts: %w", err)
	}

	evals := make([]Evaluation, 0, len(contracts))
	for _, contract := range contracts {
		if !contract.Evaluable() || contract.Player == nil {
			continue
		}
		eval, err := e.evaluateContract(ctx, contract, season)
		if err != nil {
			return nil, err
		}
		if eval == nil {
			continue
		}
		// NaN sorts as 0 so a degenerate score cannot float to the top
		if math.IsNaN(eval.ValueScore) {
			eval.ValueScore = 0
		}
		evals = append(evals, *eval)
	}

	sort.SliceStable(evals, func(i, j int) bool {
		return evals[i].ValueScore > evals[j].ValueScore
	})

	total := len(evals)
	for i := range evals {
		evals[i].LeagueRank = i + 1
		evals[i].TotalContracts = total

		// LEGENDARY is only reachable here: a top-10 deal backed by elite
		// production, never a rookie placeholder.
		if i < legendaryRankCutoff &&
			evals[i].Stats.PointsPerGame > legendaryMinPPG &&
			evals[i].Rating != RatingRookie {
			evals[i].Rating = RatingLegendary
			evals[i].Reasoning = evals[i].Reasoning + " " + ratingStatement(RatingLegendary)
		}
	}

	return evals, nil
}
