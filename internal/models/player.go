package models

import (
	"time"
)

// Position is one of the four offensive skill positions tracked by the league.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
)

// ValidPosition reports whether p is a tracked skill position.
func ValidPosition(p Position) bool {
	switch p {
	case PositionQB, PositionRB, PositionWR, PositionTE:
		return true
	}
	return false
}

type Player struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	SleeperID string   `gorm:"uniqueIndex;not null" json:"sleeper_id"`
	Name      string   `gorm:"not null" json:"name"`
	Position  Position `gorm:"not null;index" json:"position"`
	Team      string   `json:"team"` // NFL team abbreviation, empty for free agents
	Age       int      `json:"age"`
	YearsExp  int      `json:"years_exp"`

	// Fallback season aggregates written by the stats sync job. Used by the
	// stats resolver when the external provider has no entry for the player.
	SeasonPoints  float64    `json:"season_points"`
	SeasonGames   int        `json:"season_games"`
	SeasonPPG     float64    `json:"season_ppg"`
	StatsSeason   string     `gorm:"index" json:"stats_season"`
	StatsSyncedAt *time.Time `json:"stats_synced_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}

// SeasonStats is a player's scoring line for one season under the league's
// point-per-reception format.
type SeasonStats struct {
	TotalPoints   float64 `json:"total_points"`
	GamesPlayed   int     `json:"games_played"`
	PointsPerGame float64 `json:"points_per_game"`
}

// HasData reports whether the stats line represents real production. A zero
// line is a valid input downstream, it just signals low confidence.
func (s SeasonStats) HasData() bool {
	return s.GamesPlayed > 0 && s.TotalPoints > 0
}
