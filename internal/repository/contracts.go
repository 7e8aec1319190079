package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/dynastycap/capmanager/internal/models"
	"github.com/dynastycap/capmanager/pkg/database"
)

// ContractRepository is the read side consumed by the valuation engines.
type ContractRepository struct {
	db *database.DB
}

func NewContractRepository(db *database.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// ActiveByPosition returns active, non-zero-salary contracts at a position
// with the player join preloaded, ordered by salary descending. The ordering
// is the documented tie-break for comparable selection.
func (r *ContractRepository) ActiveByPosition(ctx context.Context, pos models.Position) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Joins("JOIN players ON players.id = contracts.player_id").
		Where("contracts.status = ? AND contracts.salary > 0 AND players.position = ?", models.StatusActive, pos).
		Order("contracts.salary DESC").
		Preload("Player").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ActiveByPositionForSeason is ActiveByPosition restricted to one league
// year. Used by the franchise tag calculator over the prior season's deals.
func (r *ContractRepository) ActiveByPositionForSeason(ctx context.Context, pos models.Position, season string) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Joins("JOIN players ON players.id = contracts.player_id").
		Where("contracts.status = ? AND contracts.salary > 0 AND contracts.season = ? AND players.position = ?",
			models.StatusActive, season, pos).
		Order("contracts.salary DESC").
		Preload("Player").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ActiveContracts returns every active, non-zero-salary contract in the
// league with players preloaded, for the batch ranking pass.
func (r *ContractRepository) ActiveContracts(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Where("status = ? AND salary > 0", models.StatusActive).
		Order("salary DESC").
		Preload("Player").
		Preload("Team").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ContractByID loads a single contract with its joins. Returns (nil, nil)
// when the contract does not exist.
func (r *ContractRepository) ContractByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.WithContext(ctx).
		Preload("Player").
		Preload("Team").
		First(&contract, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

// TeamContracts returns a team's contracts that still count against the cap
// (active plus released dead-cap carriers).
func (r *ContractRepository) TeamContracts(ctx context.Context, teamID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND status IN ?", teamID, []models.ContractStatus{models.StatusActive, models.StatusReleased}).
		Preload("Player").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}
