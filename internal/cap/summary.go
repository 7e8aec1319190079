// Package cap computes per-team salary-cap usage, including dead cap from
// released contracts. Kept separate from the valuation engine: cap math is
// bookkeeping, not market estimation.
package cap

import (
	"math"

	"github.com/dynastycap/capmanager/internal/models"
)

// Summary is one team's cap sheet.
type Summary struct {
	TeamID          uint   `json:"team_id"`
	TeamName        string `json:"team_name"`
	SalaryCap       int    `json:"salary_cap"`
	ActiveSalary    int    `json:"active_salary"`
	DeadCap         int    `json:"dead_cap"`
	CapSpace        int    `json:"cap_space"`
	ActiveContracts int    `json:"active_contracts"`
}

// BuildSummary totals a team's cap usage. Active contracts count at full
// salary; released contracts carry dead cap at 50% of salary for the first
// remaining year and 25% for each year after.
func BuildSummary(team models.Team, contracts []models.Contract, salaryCap int) Summary {
	summary := Summary{
		TeamID:    team.ID,
		TeamName:  team.Name,
		SalaryCap: salaryCap,
	}

	for _, contract := range contracts {
		switch contract.Status {
		case models.StatusActive:
			summary.ActiveSalary += contract.Salary
			summary.ActiveContracts++
		case models.StatusReleased:
			summary.DeadCap += deadCap(contract)
		}
	}

	summary.CapSpace = salaryCap - summary.ActiveSalary - summary.DeadCap
	return summary
}

func deadCap(contract models.Contract) int {
	years := contract.YearsRemaining
	if years < 1 {
		years = 1
	}
	salary := float64(contract.Salary)
	return int(math.Ceil(0.5*salary + 0.25*salary*float64(years-1)))
}
