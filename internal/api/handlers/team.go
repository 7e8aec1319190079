package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dynastycap/capmanager/internal/cap"
	"github.com/dynastycap/capmanager/internal/repository"
	"github.com/dynastycap/capmanager/pkg/config"
	"github.com/dynastycap/capmanager/pkg/utils"
)

type TeamHandler struct {
	league    *repository.LeagueRepository
	contracts *repository.ContractRepository
	cfg       *config.Config
}

func NewTeamHandler(league *repository.LeagueRepository, contracts *repository.ContractRepository, cfg *config.Config) *TeamHandler {
	return &TeamHandler{
		league:    league,
		contracts: contracts,
		cfg:       cfg,
	}
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.league.Teams(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch teams")
		return
	}
	utils.SendSuccessWithMeta(c, teams, &utils.Meta{Total: len(teams)})
}

// GetCapSummary returns a team's salary-cap sheet: active salary, dead cap
// and remaining space.
func (h *TeamHandler) GetCapSummary(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid team ID", err.Error())
		return
	}

	ctx := c.Request.Context()
	team, err := h.league.TeamByID(ctx, uint(teamID))
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch team")
		return
	}
	if team == nil {
		utils.SendNotFound(c, "Team not found")
		return
	}

	contracts, err := h.contracts.TeamContracts(ctx, team.ID)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch team contracts")
		return
	}

	utils.SendSuccess(c, cap.BuildSummary(*team, contracts, h.cfg.SalaryCap))
}

// ListDraftPicks returns draft picks, optionally for one team.
func (h *TeamHandler) ListDraftPicks(c *gin.Context) {
	var teamID uint
	if raw := c.Query("team_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.SendValidationError(c, "Invalid team_id filter", err.Error())
			return
		}
		teamID = uint(parsed)
	}

	picks, err := h.league.DraftPicks(c.Request.Context(), teamID)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch draft picks")
		return
	}
	utils.SendSuccessWithMeta(c, picks, &utils.Meta{Total: len(picks)})
}
