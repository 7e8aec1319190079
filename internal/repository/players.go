package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dynastycap/capmanager/internal/models"
	"github.com/dynastycap/capmanager/pkg/database"
)

type PlayerRepository struct {
	db *database.DB
}

func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// PlayerFilter narrows List results. Zero values mean "no filter".
type PlayerFilter struct {
	Position models.Position
	Team     string
	Search   string
}

func (r *PlayerRepository) List(ctx context.Context, filter PlayerFilter) ([]models.Player, error) {
	query := r.db.WithContext(ctx).Model(&models.Player{})

	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	if filter.Team != "" {
		query = query.Where("team = ?", filter.Team)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var players []models.Player
	if err := query.Order("name ASC").Find(&players).Error; err != nil {
		return nil, err
	}
	return players, nil
}

// ByID returns (nil, nil) when the player does not exist.
func (r *PlayerRepository) ByID(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).First(&player, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// BySleeperID returns (nil, nil) when the player does not exist.
func (r *PlayerRepository) BySleeperID(ctx context.Context, sleeperID string) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).Where("sleeper_id = ?", sleeperID).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// FallbackStats returns the locally synced season aggregates for a player.
// The bool is false when the player is unknown or was synced for a different
// season.
func (r *PlayerRepository) FallbackStats(ctx context.Context, sleeperID, season string) (models.SeasonStats, bool, error) {
	player, err := r.BySleeperID(ctx, sleeperID)
	if err != nil {
		return models.SeasonStats{}, false, err
	}
	if player == nil || player.StatsSeason != season {
		return models.SeasonStats{}, false, nil
	}
	return models.SeasonStats{
		TotalPoints:   player.SeasonPoints,
		GamesPlayed:   player.SeasonGames,
		PointsPerGame: player.SeasonPPG,
	}, true, nil
}

// UpdateSeasonStats writes the synced fallback aggregates onto a player row.
func (r *PlayerRepository) UpdateSeasonStats(ctx context.Context, sleeperID, season string, stats models.SeasonStats) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&models.Player{}).
		Where("sleeper_id = ?", sleeperID).
		Updates(map[string]interface{}{
			"season_points":   stats.TotalPoints,
			"season_games":    stats.GamesPlayed,
			"season_ppg":      stats.PointsPerGame,
			"stats_season":    season,
			"stats_synced_at": &now,
		}).Error
}
