package valuation

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/dynastycap/capmanager/internal/models"
)

// ContractSource is the read side of the contract store the engines consume.
type ContractSource interface {
	// ActiveByPosition returns active, non-zero-salary contracts at a
	// position, player join preloaded, ordered salary descending.
	ActiveByPosition(ctx context.Context, pos models.Position) ([]models.Contract, error)
	// ActiveByPositionForSeason restricts ActiveByPosition to one league year.
	ActiveByPositionForSeason(ctx context.Context, pos models.Position, season string) ([]models.Contract, error)
	// ActiveContracts returns every active, non-zero-salary contract.
	ActiveContracts(ctx context.Context) ([]models.Contract, error)
	// ContractByID returns (nil, nil) when the contract does not exist.
	ContractByID(ctx context.Context, id uint) (*models.Contract, error)
}

// StatsSource resolves a player's season scoring line.
type StatsSource interface {
	Resolve(ctx context.Context, sleeperID, season string) (models.SeasonStats, error)
}

// Engine computes market salary estimates and contract evaluations from
// comparable active contracts.
type Engine struct {
	contracts ContractSource
	stats     StatsSource
	logger    *logrus.Logger
}

func NewEngine(contracts ContractSource, stats StatsSource, logger *logrus.Logger) *Engine {
	return &Engine{
		contracts: contracts,
		stats:     stats,
		logger:    logger,
	}
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Comparable is another active contract used to anchor an estimate.
type Comparable struct {
	SleeperID     string  `json:"sleeper_id"`
	Name          string  `json:"name"`
	Salary        int     `json:"salary"`
	PointsPerGame float64 `json:"points_per_game"`
	Distance      float64 `json:"distance"` // |comparable PPG - target PPG|
}

type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Estimate is a computed fair-market salary for one player. Recomputed on
// every request, never persisted.
type Estimate struct {
	EstimatedSalary int                `json:"estimated_salary"`
	SalaryRange     SalaryRange        `json:"salary_range"`
	Confidence      Confidence         `json:"confidence"`
	Comparables     []Comparable       `json:"comparables"` // top 3, closest first
	Reasoning       []ReasoningStep    `json:"reasoning"`
	Stats           models.SeasonStats `json:"stats"`
}

// EstimateRequest describes the player to price. Age overrides the stored
// player age when non-zero. PreviousSalary of 0 means no anchor; anchors of
// 3 or less are ignored as noise.
type EstimateRequest struct {
	Player         *models.Player
	Season         string
	Age            int
	PreviousSalary int
}

// comparable selection constants
const (
	maxWeightedComparables = 5
	maxSurfacedComparables = 3
)

// Estimate produces a fair-market salary estimate for a player from
// comparable contracts at the same position.
func (e *Engine) Estimate(ctx context.Context, req EstimateRequest) (*Estimate, error) {
	if req.Player == nil {
		return nil, fmt.Errorf("estimate requires a player")
	}

	player := req.Player
	profile := profileFor(player.Position)

	stats, err := e.stats.Resolve(ctx, player.SleeperID, req.Season)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve stats for %s: %w", player.SleeperID, err)
	}

	age := req.Age
	if age == 0 {
		age = player.Age
	}

	candidates, err := e.positionCandidates(ctx, player.Position, req.Season, player.SleeperID)
	if err != nil {
		return nil, err
	}

	comps := selectComparables(candidates, stats.PointsPerGame, profile.Window)

	steps := []ReasoningStep{{
		Kind: StepPlayer,
		Detail: fmt.Sprintf("%s (%s): %.1f PPG over %d games in %s",
			player.Name, player.Position, stats.PointsPerGame, stats.GamesPlayed, req.Season),
	}}

	var base int
	if len(comps) > 0 {
		weighted := comps
		if len(weighted) > maxWeightedComparables {
			weighted = weighted[:maxWeightedComparables]
		}
		base = weightedComparableSalary(weighted)
		steps = append(steps, ReasoningStep{
			Kind: StepComparables,
			Detail: fmt.Sprintf("Weighted average of %d comparable %s contracts: $%d",
				len(weighted), player.Position, base),
		})
	} else {
		posAvg := positionAverageSalary(candidates, profile)
		impliedPPG := posAvg / profile.Multiplier
		base = roundToInt(posAvg + 2*(stats.PointsPerGame-impliedPPG))
		steps = append(steps, ReasoningStep{
			Kind: StepFallback,
			Detail: fmt.Sprintf("No comparables in range; position average $%.0f adjusted for %.1f PPG vs %.1f implied: $%d",
				posAvg, stats.PointsPerGame, impliedPPG, base),
		})
	}

	base, steps = applyAgeAdjustment(base, age, steps)
	base, steps = applyAvailabilityAdjustment(base, stats.GamesPlayed, steps)
	base, steps = applyPreviousSalaryAnchor(base, req.PreviousSalary, steps)

	estimated := profile.clamp(base)

	pad := roundToInt(0.10 * float64(estimated))
	if pad < 5 {
		pad = 5
	}
	salaryRange := SalaryRange{
		Min: profile.clamp(estimated - pad),
		Max: profile.clamp(estimated + pad),
	}

	confidence := confidenceLevel(len(comps), stats.GamesPlayed)
	steps = append(steps, ReasoningStep{
		Kind: StepConfidence,
		Detail: fmt.Sprintf("Confidence %s: %d comparables, %d games played",
			confidence, len(comps), stats.GamesPlayed),
	})
	steps = append(steps, ReasoningStep{
		Kind: StepFinal,
		Detail: fmt.Sprintf("Estimated salary $%d (range $%d-$%d)",
			estimated, salaryRange.Min, salaryRange.Max),
	})

	surfaced := comps
	if len(surfaced) > maxSurfacedComparables {
		surfaced = surfaced[:maxSurfacedComparables]
	}

	return &Estimate{
		EstimatedSalary: estimated,
		SalaryRange:     salaryRange,
		Confidence:      confidence,
		Comparables:     surfaced,
		Reasoning:       steps,
		Stats:           stats,
	}, nil
}

// QuickEstimate is the fast path: no contract or stats lookups, just the
// position multiplier with age and previous-salary adjustments. Used for
// bulk operations where a full comparable search is unnecessary.
func QuickEstimate(pos models.Position, ppg float64, age, previousSalary int) int {
	profile := profileFor(pos)
	base := roundToInt(ppg * profile.Multiplier)
	base, _ = applyAgeAdjustment(base, age, nil)
	base, _ = applyPreviousSalaryAnchor(base, previousSalary, nil)
	return profile.clamp(base)
}

// candidate pairs an active contract with its resolved scoring line.
type candidate struct {
	contract models.Contract
	stats    models.SeasonStats
}

// positionCandidates loads all active contracts at a position (excluding one
// player when excludeID is non-empty) and resolves each player's stats.
// Contracts with a missing player join are skipped.
func (e *Engine) positionCandidates(ctx context.Context, pos models.Position, season, excludeID string) ([]candidate, error) {
	contracts, err := e.contracts.ActiveByPosition(ctx, pos)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s contracts: %w", pos, err)
	}

	candidates := make([]candidate, 0, len(contracts))
	for _, contract := range contracts {
		if contract.Player == nil {
			e.logger.Warnf("Contract %d has no player join, skipping", contract.ID)
			continue
		}
		if excludeID != "" && contract.Player.SleeperID == excludeID {
			continue
		}

		stats, err := e.stats.Resolve(ctx, contract.Player.SleeperID, season)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stats for %s: %w", contract.Player.SleeperID, err)
		}
		candidates = append(candidates, candidate{contract: contract, stats: stats})
	}
	return candidates, nil
}

// selectComparables keeps candidates whose PPG falls within the position
// window of the target's and orders them closest first. Ties keep the
// underlying salary-descending query order (accepted non-strict tie-break).
func selectComparables(candidates []candidate, targetPPG, window float64) []Comparable {
	comps := make([]Comparable, 0, len(candidates))
	for _, c := range candidates {
		distance := math.Abs(c.stats.PointsPerGame - targetPPG)
		if distance > window {
			continue
		}
		comps = append(comps, Comparable{
			SleeperID:     c.contract.Player.SleeperID,
			Name:          c.contract.Player.Name,
			Salary:        c.contract.Salary,
			PointsPerGame: c.stats.PointsPerGame,
			Distance:      distance,
		})
	}

	sort.SliceStable(comps, func(i, j int) bool {
		return comps[i].Distance < comps[j].Distance
	})
	return comps
}

// weightedComparableSalary averages comparable salaries weighted by
// 1/(1+distance), so closer matches dominate but none get zero weight.
func weightedComparableSalary(comps []Comparable) int {
	var weightedSum, totalWeight float64
	for _, comp := range comps {
		w := 1 / (1 + comp.Distance)
		weightedSum += w * float64(comp.Salary)
		totalWeight += w
	}
	return roundToInt(weightedSum / totalWeight)
}

// positionAverageSalary is the mean active salary at the position, or the
// profile default when the position has no active contracts.
func positionAverageSalary(candidates []candidate, profile positionProfile) float64 {
	if len(candidates) == 0 {
		return profile.DefaultAverage
	}
	total := 0
	for _, c := range candidates {
		total += c.contract.Salary
	}
	return float64(total) / float64(len(candidates))
}

func applyAgeAdjustment(base, age int, steps []ReasoningStep) (int, []ReasoningStep) {
	switch {
	case age >= 24 && age <= 26:
		base += 3
		steps = append(steps, ReasoningStep{
			Kind:   StepAgeBonus,
			Delta:  3,
			Detail: fmt.Sprintf("Prime age bonus (age %d): +$3", age),
		})
	case age > 28:
		penalty := 2 * (age - 28)
		base -= penalty
		steps = append(steps, ReasoningStep{
			Kind:   StepAgePenalty,
			Delta:  -penalty,
			Detail: fmt.Sprintf("Age decline penalty (age %d): -$%d", age, penalty),
		})
	}
	return base, steps
}

func applyAvailabilityAdjustment(base, gamesPlayed int, steps []ReasoningStep) (int, []ReasoningStep) {
	if gamesPlayed > 0 && gamesPlayed < 14 {
		penalty := roundToInt(1.5 * float64(14-gamesPlayed))
		base -= penalty
		steps = append(steps, ReasoningStep{
			Kind:   StepAvailability,
			Delta:  -penalty,
			Detail: fmt.Sprintf("Availability penalty (%d of 14 games): -$%d", gamesPlayed, penalty),
		})
	}
	return base, steps
}

// applyPreviousSalaryAnchor pulls the estimate 30% toward a prior salary.
// Skipped for anchors of 3 or less, and the evaluator never supplies one so
// market comparisons stay unbiased.
func applyPreviousSalaryAnchor(base, previousSalary int, steps []ReasoningStep) (int, []ReasoningStep) {
	if previousSalary > 3 {
		anchored := roundToInt(float64(base)*0.7 + float64(previousSalary)*0.3)
		steps = append(steps, ReasoningStep{
			Kind:   StepPreviousSalary,
			Delta:  anchored - base,
			Detail: fmt.Sprintf("Anchored 30%% toward previous salary $%d: $%d", previousSalary, anchored),
		})
		base = anchored
	}
	return base, steps
}

// confidenceLevel is a pure function of comparable count and games played.
func confidenceLevel(comparables, gamesPlayed int) Confidence {
	if comparables >= 3 && gamesPlayed >= 10 {
		return ConfidenceHigh
	}
	if comparables >= 1 || gamesPlayed >= 6 {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

func roundToInt(f float64) int {
	return int(math.Round(f))
}
