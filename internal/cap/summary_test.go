package cap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dynastycap/capmanager/internal/models"
)

func TestBuildSummary(t *testing.T) {
	team := models.Team{ID: 1, Name: "Gridiron Hoarders"}
	contracts := []models.Contract{
		{Salary: 40, YearsRemaining: 2, Status: models.StatusActive},
		{Salary: 25, YearsRemaining: 1, Status: models.StatusActive},
		{Salary: 10, YearsRemaining: 2, Status: models.StatusReleased}, // dead: ceil(5 + 2.5) = 8
		{Salary: 7, YearsRemaining: 1, Status: models.StatusReleased},  // dead: ceil(3.5) = 4
		{Salary: 15, YearsRemaining: 0, Status: models.StatusExpired},  // ignored
	}

	summary := BuildSummary(team, contracts, 300)

	assert.Equal(t, uint(1), summary.TeamID)
	assert.Equal(t, 65, summary.ActiveSalary)
	assert.Equal(t, 2, summary.ActiveContracts)
	assert.Equal(t, 12, summary.DeadCap)
	assert.Equal(t, 300-65-12, summary.CapSpace)
}

// Dead cap is 50% of salary in the first remaining year and 25% per year
// after, rounded up once at the end.
func TestDeadCapSchedule(t *testing.T) {
	tests := []struct {
		salary int
		years  int
		want   int
	}{
		{10, 1, 5},
		{10, 2, 8},  // 5 + 2.5
		{10, 3, 10}, // 5 + 2.5 + 2.5
		{7, 1, 4},   // ceil(3.5)
		{10, 0, 5},  // no remaining years still charges year one
	}

	for _, tt := range tests {
		summary := BuildSummary(models.Team{ID: 3}, []models.Contract{
			{Salary: tt.salary, YearsRemaining: tt.years, Status: models.StatusReleased},
		}, 300)
		assert.Equal(t, tt.want, summary.DeadCap, "salary=%d years=%d", tt.salary, tt.years)
	}
}

func TestBuildSummaryEmptyRoster(t *testing.T) {
	summary := BuildSummary(models.Team{ID: 2, Name: "Rebuilders"}, nil, 300)
	assert.Zero(t, summary.ActiveSalary)
	assert.Equal(t, 300, summary.CapSpace)
}
