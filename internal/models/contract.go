package models

import (
	"time"
)

type ContractCategory string

const (
	CategoryStandard  ContractCategory = "standard"
	CategoryRookie    ContractCategory = "rookie"
	CategoryExtension ContractCategory = "extension"
	CategoryFreeAgent ContractCategory = "free_agent"
	CategoryFranchise ContractCategory = "franchise"
)

type ContractStatus string

const (
	StatusActive   ContractStatus = "active"
	StatusReleased ContractStatus = "released"
	StatusTraded   ContractStatus = "traded"
	StatusExpired  ContractStatus = "expired"
	StatusVoided   ContractStatus = "voided"
)

type Contract struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	TeamID         uint             `gorm:"index;not null" json:"team_id"`
	PlayerID       uint             `gorm:"index;not null" json:"player_id"`
	Salary         int              `gorm:"not null" json:"salary"` // per-year, whole currency units
	YearsTotal     int              `gorm:"not null" json:"years_total"`
	YearsRemaining int              `gorm:"not null" json:"years_remaining"`
	Category       ContractCategory `gorm:"not null;default:standard" json:"category"`
	Status         ContractStatus   `gorm:"not null;default:active;index" json:"status"`
	Season         string           `gorm:"index;not null" json:"season"` // league year the contract belongs to

	// Joins may be absent (player purged, orphaned team); consumers must
	// check for nil before dereferencing.
	Team   *Team   `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Player *Player `gorm:"foreignKey:PlayerID" json:"player,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Contract) TableName() string {
	return "contracts"
}

// Evaluable reports whether the contract participates in valuation and
// ranking. Zero-salary contracts are placeholders (e.g. awaiting a franchise
// tag decision) and are excluded everywhere.
func (c *Contract) Evaluable() bool {
	return c.Status == StatusActive && c.Salary > 0
}
