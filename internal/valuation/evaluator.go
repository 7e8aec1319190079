package valuation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/dynastycap/capmanager/internal/models"
)

// Rating is the qualitative verdict on a contract's value.
type Rating string

const (
	RatingLegendary   Rating = "LEGENDARY" // batch ranking pass only
	RatingCornerstone Rating = "CORNERSTONE"
	RatingSteal       Rating = "STEAL"
	RatingGood        Rating = "GOOD"
	RatingBust        Rating = "BUST"
	RatingRookie      Rating = "ROOKIE"
)

// Evaluation compares a contract's actual salary to estimated market value.
// LeagueRank and TotalContracts are only set by the batch ranking pass; a
// standalone evaluation leaves them zero.
type Evaluation struct {
	ContractID      uint               `json:"contract_id"`
	SleeperID       string             `json:"sleeper_id"`
	PlayerName      string             `json:"player_name"`
	Position        models.Position    `json:"position"`
	EstimatedSalary int                `json:"estimated_salary"`
	ActualSalary    int                `json:"actual_salary"`
	ValueScore      float64            `json:"value_score"` // percent; positive = below market
	SalaryDiff      int                `json:"salary_diff"`
	PositionRank    int                `json:"position_rank"`
	LeagueRank      int                `json:"league_rank,omitempty"`
	TotalContracts  int                `json:"total_contracts,omitempty"`
	Rating          Rating             `json:"rating"`
	Reasoning       string             `json:"reasoning"`
	Stats           models.SeasonStats `json:"stats"`
}

// Evaluate compares one contract to market. Returns (nil, nil) when there is
// nothing to evaluate: contract missing, zero salary (pending placeholder),
// or the player join is absent.
func (e *Engine) Evaluate(ctx context.Context, contractID uint, season string) (*Evaluation, error) {
	contract, err := e.contracts.ContractByID(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract %d: %w", contractID, err)
	}
	if contract == nil || contract.Salary == 0 || contract.Player == nil {
		return nil, nil
	}

	return e.evaluateContract(ctx, *contract, season)
}

func (e *Engine) evaluateContract(ctx context.Context, contract models.Contract, season string) (*Evaluation, error) {
	player := contract.Player

	stats, err := e.stats.Resolve(ctx, player.SleeperID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stats for %s: %w", player.SleeperID, err)
	}

	rookie := isRookieContract(contract, *player, stats)

	// Market comparison is deliberately unanchored: no previous salary, so
	// the estimate is not biased toward what the contract already pays.
	estimate, err := e.Estimate(ctx, EstimateRequest{
		Player: player,
		Season: season,
	})
	if err != nil {
		return nil, err
	}

	estimated := estimate.EstimatedSalary
	actual := contract.Salary
	valueScore := computeValueScore(estimated, actual)

	posRank, err := e.positionRank(ctx, player.Position, season, player.SleeperID, stats.PointsPerGame)
	if err != nil {
		return nil, err
	}

	rating := determineRating(rookie, posRank, valueScore)

	eval := &Evaluation{
		ContractID:      contract.ID,
		SleeperID:       player.SleeperID,
		PlayerName:      player.Name,
		Position:        player.Position,
		EstimatedSalary: estimated,
		ActualSalary:    actual,
		ValueScore:      valueScore,
		SalaryDiff:      estimated - actual,
		PositionRank:    posRank,
		Rating:          rating,
		Stats:           stats,
	}
	eval.Reasoning = buildEvaluationReasoning(eval)
	return eval, nil
}

// computeValueScore is the percentage by which estimated market value
// exceeds (positive) or falls short of (negative) the actual salary. Defined
// as 0 for a zero estimate.
func computeValueScore(estimated, actual int) float64 {
	if estimated == 0 {
		return 0
	}
	return (float64(estimated-actual) / float64(estimated)) * 100
}

// isRookieContract guards against misclassifying a productive veteran who is
// still nominally on a rookie-category deal: the rookie treatment applies
// only before meaningful production exists.
func isRookieContract(contract models.Contract, player models.Player, stats models.SeasonStats) bool {
	if contract.Category != models.CategoryRookie {
		return false
	}
	if player.YearsExp >= 2 {
		return false
	}
	return stats.GamesPlayed < 6 || stats.PointsPerGame < 5
}

// positionRank ranks the player by PPG among all active contracts at the
// position, rank 1 = highest PPG. The target's own contract counts as part
// of the pool.
func (e *Engine) positionRank(ctx context.Context, pos models.Position, season, sleeperID string, targetPPG float64) (int, error) {
	candidates, err := e.positionCandidates(ctx, pos, season, "")
	if err != nil {
		return 0, err
	}

	rank := 1
	for _, c := range candidates {
		if c.contract.Player.SleeperID == sleeperID {
			continue
		}
		if c.stats.PointsPerGame > targetPPG {
			rank++
		}
	}
	return rank, nil
}

// determineRating applies the rating rules in priority order; first match
// wins. The order means a top-5 player at exactly +25% is CORNERSTONE, not
// STEAL.
func determineRating(rookie bool, positionRank int, valueScore float64) Rating {
	switch {
	case rookie:
		return RatingRookie
	case positionRank <= 5 && valueScore >= -25:
		return RatingCornerstone
	case valueScore >= 25:
		return RatingSteal
	case valueScore >= -25:
		return RatingGood
	default:
		return RatingBust
	}
}

func buildEvaluationReasoning(eval *Evaluation) string {
	parts := []string{
		fmt.Sprintf("%s is paid $%d against an estimated market value of $%d.",
			eval.PlayerName, eval.ActualSalary, eval.EstimatedSalary),
	}

	switch {
	case eval.ValueScore > 0:
		parts = append(parts, fmt.Sprintf("The contract saves %.1f%% versus market.", eval.ValueScore))
	case eval.ValueScore < 0:
		parts = append(parts, fmt.Sprintf("The contract pays a %.1f%% premium over market.", math.Abs(eval.ValueScore)))
	default:
		parts = append(parts, "The contract is priced exactly at market.")
	}

	parts = append(parts, fmt.Sprintf("Production: %.1f PPG across %d games.",
		eval.Stats.PointsPerGame, eval.Stats.GamesPlayed))
	parts = append(parts, fmt.Sprintf("Ranks #%d at %s by points per game.",
		eval.PositionRank, eval.Position))
	parts = append(parts, ratingStatement(eval.Rating))

	return strings.Join(parts, " ")
}

func ratingStatement(rating Rating) string {
	switch rating {
	case RatingLegendary:
		return "A legendary contract: elite production at a bargain price."
	case RatingCornerstone:
		return "A cornerstone: top-5 positional production at a fair or better price."
	case RatingSteal:
		return "A steal: paying well below market value."
	case RatingGood:
		return "A solid contract near market value."
	case RatingRookie:
		return "A rookie deal: too early to judge against market."
	default:
		return "A bust: paying well above market value."
	}
}
