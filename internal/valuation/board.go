package valuation

import (
	"context"
	"fmt"
	"sort"

	"github.com/dynastycap/capmanager/internal/models"
)

// BoardEntry is one row of the quick valuation board.
type BoardEntry struct {
	PlayerID        uint            `json:"player_id"`
	SleeperID       string          `json:"sleeper_id"`
	Name            string          `json:"name"`
	Position        models.Position `json:"position"`
	PointsPerGame   float64         `json:"points_per_game"`
	GamesPlayed     int             `json:"games_played"`
	EstimatedSalary int             `json:"estimated_salary"`
}

// ValuationBoard prices a set of players with the fast path: position
// multiplier and age adjustment per player, no comparable search. A full
// Estimate per player would rescan the position pool for every row; the
// board trades the comparables for one stats lookup each. Entries come back
// highest estimate first.
func (e *Engine) ValuationBoard(ctx context.Context, players []models.Player, season string) ([]BoardEntry, error) {
	entries := make([]BoardEntry, 0, len(players))
	for _, player := range players {
		stats, err := e.stats.Resolve(ctx, player.SleeperID, season)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stats for %s: %w", player.SleeperID, err)
		}
		entries = append(entries, BoardEntry{
			PlayerID:        player.ID,
			SleeperID:       player.SleeperID,
			Name:            player.Name,
			Position:        player.Position,
			PointsPerGame:   stats.PointsPerGame,
			GamesPlayed:     stats.GamesPlayed,
			EstimatedSalary: QuickEstimate(player.Position, stats.PointsPerGame, player.Age, 0),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EstimatedSalary > entries[j].EstimatedSalary
	})
	return entries, nil
}
