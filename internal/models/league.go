package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Team is a league member's franchise.
type Team struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	Name            string `gorm:"not null" json:"name"`
	OwnerName       string `json:"owner_name"`
	SleeperRosterID string `gorm:"index" json:"sleeper_roster_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// DraftPick is a tradeable future draft asset.
type DraftPick struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Season         string `gorm:"not null;index" json:"season"`
	Round          int    `gorm:"not null" json:"round"`
	OriginalTeamID uint   `gorm:"index" json:"original_team_id"`
	CurrentTeamID  uint   `gorm:"index" json:"current_team_id"`

	OriginalTeam *Team `gorm:"foreignKey:OriginalTeamID" json:"original_team,omitempty"`
	CurrentTeam  *Team `gorm:"foreignKey:CurrentTeamID" json:"current_team,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DraftPick) TableName() string {
	return "draft_picks"
}

type TradeStatus string

const (
	TradeProposed TradeStatus = "proposed"
	TradeAccepted TradeStatus = "accepted"
	TradeRejected TradeStatus = "rejected"
	TradeExecuted TradeStatus = "executed"
)

// Trade records an exchange of contracts and picks between two teams. The
// asset payload is stored as JSON since the mix of contracts, picks and cap
// considerations varies per trade.
type Trade struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProposingTeamID  uint           `gorm:"index;not null" json:"proposing_team_id"`
	ReceivingTeamID  uint           `gorm:"index;not null" json:"receiving_team_id"`
	Status           TradeStatus    `gorm:"not null;default:proposed" json:"status"`
	Assets           datatypes.JSON `json:"assets"`
	ExecutedAt       *time.Time     `json:"executed_at,omitempty"`

	ProposingTeam *Team `gorm:"foreignKey:ProposingTeamID" json:"proposing_team,omitempty"`
	ReceivingTeam *Team `gorm:"foreignKey:ReceivingTeamID" json:"receiving_team,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Trade) TableName() string {
	return "trades"
}
