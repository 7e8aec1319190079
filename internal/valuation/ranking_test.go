package valuation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dynastycap/capmanager/internal/models"
)

func leagueFixture() (*fakeContracts, *fakeStats) {
	return buildFixture([]contractSpec{
		// high producers on cheap deals
		{id: 1, sleeper: "wr1", name: "Bargain Alpha", pos: models.PositionWR, salary: 10, ppg: 14.0, games: 16, age: 27},
		{id: 2, sleeper: "wr2", name: "Market Alpha", pos: models.PositionWR, salary: 30, ppg: 14.5, games: 16, age: 27},
		// low producer, modest price
		{id: 3, sleeper: "wr3", name: "Dart Throw", pos: models.PositionWR, salary: 5, ppg: 4.0, games: 16, age: 27},
		// productive rookie deal with a tiny sample
		{id: 4, sleeper: "rb1", name: "Fresh Legs", pos: models.PositionRB, salary: 6, ppg: 12.0, games: 3, age: 22,
			yearsExp: 0, category: models.CategoryRookie},
		{id: 5, sleeper: "rb2", name: "Steady Back", pos: models.PositionRB, salary: 25, ppg: 12.5, games: 16, age: 27},
		// zero-salary placeholder must never appear in rankings
		{id: 6, sleeper: "wr4", name: "Tag Pending", pos: models.PositionWR, salary: 0, ppg: 13.0, games: 16, age: 27},
	})
}

func TestRankLeague(t *testing.T) {
	contracts, stats := leagueFixture()
	engine := newTestEngine(contracts, stats)

	rankings, err := engine.RankLeague(context.Background(), "2025")
	require.NoError(t, err)
	require.Len(t, rankings, 5, "placeholder contract excluded")

	for i, eval := range rankings {
		assert.Equal(t, i+1, eval.LeagueRank)
		assert.Equal(t, 5, eval.TotalContracts)
		if i > 0 {
			assert.GreaterOrEqual(t, rankings[i-1].ValueScore, eval.ValueScore,
				"rankings must be sorted best deal first")
		}
	}
}

func TestRankLeagueIdempotent(t *testing.T) {
	contracts, stats := leagueFixture()
	engine := newTestEngine(contracts, stats)

	first, err := engine.RankLeague(context.Background(), "2025")
	require.NoError(t, err)
	second, err := engine.RankLeague(context.Background(), "2025")
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ContractID, second[i].ContractID)
		assert.Equal(t, first[i].LeagueRank, second[i].LeagueRank)
		assert.Equal(t, first[i].Rating, second[i].Rating)
	}
}

func TestRankLeagueLegendaryUpgrade(t *testing.T) {
	contracts, stats := leagueFixture()
	engine := newTestEngine(contracts, stats)

	rankings, err := engine.RankLeague(context.Background(), "2025")
	require.NoError(t, err)

	for i, eval := range rankings {
		if eval.Rating == RatingLegendary {
			assert.Less(t, i, legendaryRankCutoff, "legendary only inside the top 10")
			assert.Greater(t, eval.Stats.PointsPerGame, legendaryMinPPG)
		}
		if eval.SleeperID == "rb1" {
			assert.Equal(t, RatingRookie, eval.Rating, "rookies are never upgraded")
		}
		if eval.SleeperID == "wr3" {
			assert.NotEqual(t, RatingLegendary, eval.Rating, "low PPG blocks the upgrade")
		}
	}

	// the cheap elite producer lands at the top and earns the upgrade
	assert.Equal(t, "wr1", rankings[0].SleeperID)
	assert.Equal(t, RatingLegendary, rankings[0].Rating)
}
