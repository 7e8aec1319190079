package valuation

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/dynastycap/capmanager/internal/models"
)

// fakeContracts is an in-memory ContractSource. Contracts are stored in
// salary-descending order per position, matching the repository contract.
type fakeContracts struct {
	contracts []models.Contract
}

func (f *fakeContracts) ActiveByPosition(_ context.Context, pos models.Position) ([]models.Contract, error) {
	var out []models.Contract
	for _, c := range f.contracts {
		if c.Evaluable() && c.Player != nil && c.Player.Position == pos {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContracts) ActiveByPositionForSeason(_ context.Context, pos models.Position, season string) ([]models.Contract, error) {
	var out []models.Contract
	for _, c := range f.contracts {
		if c.Evaluable() && c.Season == season && c.Player != nil && c.Player.Position == pos {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContracts) ActiveContracts(_ context.Context) ([]models.Contract, error) {
	var out []models.Contract
	for _, c := range f.contracts {
		if c.Evaluable() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContracts) ContractByID(_ context.Context, id uint) (*models.Contract, error) {
	for i := range f.contracts {
		if f.contracts[i].ID == id {
			c := f.contracts[i]
			return &c, nil
		}
	}
	return nil, nil
}

// fakeStats resolves stats from a fixed table; unknown players get zeros,
// mirroring the resolver's degrade-to-zero behavior.
type fakeStats struct {
	table map[string]models.SeasonStats
}

func (f *fakeStats) Resolve(_ context.Context, sleeperID, _ string) (models.SeasonStats, error) {
	return f.table[sleeperID], nil
}

func statsLine(ppg float64, games int) models.SeasonStats {
	return models.SeasonStats{
		TotalPoints:   ppg * float64(games),
		GamesPlayed:   games,
		PointsPerGame: ppg,
	}
}

type contractSpec struct {
	id       uint
	sleeper  string
	name     string
	pos      models.Position
	salary   int
	ppg      float64
	games    int
	age      int
	yearsExp int
	category models.ContractCategory
	season   string
}

func buildFixture(specs []contractSpec) (*fakeContracts, *fakeStats) {
	contracts := &fakeContracts{}
	stats := &fakeStats{table: make(map[string]models.SeasonStats)}

	for _, s := range specs {
		category := s.category
		if category == "" {
			category = models.CategoryStandard
		}
		season := s.season
		if season == "" {
			season = "2025"
		}
		contracts.contracts = append(contracts.contracts, models.Contract{
			ID:             s.id,
			TeamID:         1,
			PlayerID:       s.id,
			Salary:         s.salary,
			YearsTotal:     2,
			YearsRemaining: 1,
			Category:       category,
			Status:         models.StatusActive,
			Season:         season,
			Player: &models.Player{
				ID:        s.id,
				SleeperID: s.sleeper,
				Name:      s.name,
				Position:  s.pos,
				Age:       s.age,
				YearsExp:  s.yearsExp,
			},
		})
		stats.table[s.sleeper] = statsLine(s.ppg, s.games)
	}
	return contracts, stats
}

func newTestEngine(contracts *fakeContracts, stats *fakeStats) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewEngine(contracts, stats, log)
}
