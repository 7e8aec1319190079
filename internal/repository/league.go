package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dynastycap/capmanager/internal/models"
	"github.com/dynastycap/capmanager/pkg/database"
)

type LeagueRepository struct {
	db *database.DB
}

func NewLeagueRepository(db *database.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Teams(ctx context.Context) ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *LeagueRepository) TeamByID(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team
	err := r.db.WithContext(ctx).First(&team, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *LeagueRepository) DraftPicks(ctx context.Context, teamID uint) ([]models.DraftPick, error) {
	query := r.db.WithContext(ctx).
		Preload("OriginalTeam").
		Preload("CurrentTeam").
		Order("season ASC, round ASC")
	if teamID != 0 {
		query = query.Where("current_team_id = ?", teamID)
	}

	var picks []models.DraftPick
	if err := query.Find(&picks).Error; err != nil {
		return nil, err
	}
	return picks, nil
}

func (r *LeagueRepository) Trades(ctx context.Context) ([]models.Trade, error) {
	var trades []models.Trade
	err := r.db.WithContext(ctx).
		Preload("ProposingTeam").
		Preload("ReceivingTeam").
		Order("created_at DESC").
		Find(&trades).Error
	if err != nil {
		return nil, err
	}
	return trades, nil
}

func (r *LeagueRepository) TradeByID(ctx context.Context, id uuid.UUID) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.WithContext(ctx).
		Preload("ProposingTeam").
		Preload("ReceivingTeam").
		Where("id = ?", id).
		First(&trade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &trade, nil
}
