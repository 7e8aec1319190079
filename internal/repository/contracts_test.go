package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dynastycap/capmanager/internal/models"
	"github.com/dynastycap/capmanager/pkg/database"
)

func testDB(t *testing.T) *database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(&models.Team{}, &models.Player{}, &models.Contract{}))
	return &database.DB{DB: gormDB}
}

func seedContracts(t *testing.T, db *database.DB) {
	t.Helper()

	players := []models.Player{
		{ID: 1, SleeperID: "wr-a", Name: "Alpha", Position: models.PositionWR},
		{ID: 2, SleeperID: "wr-b", Name: "Bravo", Position: models.PositionWR},
		{ID: 3, SleeperID: "wr-c", Name: "Charlie", Position: models.PositionWR},
		{ID: 4, SleeperID: "rb-a", Name: "Delta", Position: models.PositionRB},
	}
	require.NoError(t, db.Create(&players).Error)

	team := models.Team{ID: 1, Name: "Testers"}
	require.NoError(t, db.Create(&team).Error)

	contracts := []models.Contract{
		{ID: 1, TeamID: 1, PlayerID: 1, Salary: 15, YearsTotal: 2, YearsRemaining: 1, Status: models.StatusActive, Season: "2025"},
		{ID: 2, TeamID: 1, PlayerID: 2, Salary: 40, YearsTotal: 3, YearsRemaining: 2, Status: models.StatusActive, Season: "2025"},
		// zero salary: pending placeholder, excluded everywhere
		{ID: 3, TeamID: 1, PlayerID: 3, Salary: 0, YearsTotal: 1, YearsRemaining: 1, Status: models.StatusActive, Season: "2025"},
		// released contracts never participate
		{ID: 4, TeamID: 1, PlayerID: 4, Salary: 25, YearsTotal: 2, YearsRemaining: 1, Status: models.StatusReleased, Season: "2025"},
		// prior-season deal, only visible to the season-scoped query
		{ID: 5, TeamID: 1, PlayerID: 1, Salary: 12, YearsTotal: 1, YearsRemaining: 0, Status: models.StatusActive, Season: "2024"},
	}
	require.NoError(t, db.Create(&contracts).Error)
}

func TestActiveByPosition(t *testing.T) {
	db := testDB(t)
	seedContracts(t, db)
	repo := NewContractRepository(db)

	contracts, err := repo.ActiveByPosition(context.Background(), models.PositionWR)
	require.NoError(t, err)

	require.Len(t, contracts, 3, "placeholder and released contracts excluded")
	assert.Equal(t, 40, contracts[0].Salary, "ordered salary descending")
	require.NotNil(t, contracts[0].Player)
	assert.Equal(t, "Bravo", contracts[0].Player.Name)
}

func TestActiveByPositionForSeason(t *testing.T) {
	db := testDB(t)
	seedContracts(t, db)
	repo := NewContractRepository(db)

	contracts, err := repo.ActiveByPositionForSeason(context.Background(), models.PositionWR, "2024")
	require.NoError(t, err)

	require.Len(t, contracts, 1)
	assert.Equal(t, uint(5), contracts[0].ID)
}

func TestContractByIDAbsence(t *testing.T) {
	db := testDB(t)
	seedContracts(t, db)
	repo := NewContractRepository(db)

	contract, err := repo.ContractByID(context.Background(), 999)
	require.NoError(t, err, "missing contract is an absence, not an error")
	assert.Nil(t, contract)

	contract, err = repo.ContractByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, contract)
	require.NotNil(t, contract.Player)
	assert.Equal(t, "Bravo", contract.Player.Name)
}

func TestTeamContractsIncludesDeadCapCarriers(t *testing.T) {
	db := testDB(t)
	seedContracts(t, db)
	repo := NewContractRepository(db)

	contracts, err := repo.TeamContracts(context.Background(), 1)
	require.NoError(t, err)

	var sawReleased bool
	for _, c := range contracts {
		assert.NotEqual(t, models.StatusExpired, c.Status)
		if c.Status == models.StatusReleased {
			sawReleased = true
		}
	}
	assert.True(t, sawReleased, "released contracts still carry dead cap")
}

func TestFallbackStats(t *testing.T) {
	db := testDB(t)
	seedContracts(t, db)
	repo := NewPlayerRepository(db)
	ctx := context.Background()

	stats := models.SeasonStats{TotalPoints: 200, GamesPlayed: 16, PointsPerGame: 12.5}
	require.NoError(t, repo.UpdateSeasonStats(ctx, "wr-a", "2025", stats))

	got, ok, err := repo.FallbackStats(ctx, "wr-a", "2025")
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 12.5, got.PointsPerGame, 0.0001)

	// a different season's aggregates don't answer for this one
	_, ok, err = repo.FallbackStats(ctx, "wr-a", "2024")
	require.NoError(t, err)
	assert.False(t, ok)

	// unknown player is an absence
	_, ok, err = repo.FallbackStats(ctx, "ghost", "2025")
	require.NoError(t, err)
	assert.False(t, ok)
}
