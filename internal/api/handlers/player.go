package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dynastycap/capmanager/internal/models"
	"github.com/dynastycap/capmanager/internal/repository"
	"github.com/dynastycap/capmanager/pkg/utils"
)

type PlayerHandler struct {
	players *repository.PlayerRepository
}

func NewPlayerHandler(players *repository.PlayerRepository) *PlayerHandler {
	return &PlayerHandler{players: players}
}

// ListPlayers returns tracked players, filterable by position, NFL team and
// name search.
func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	filter := repository.PlayerFilter{
		Position: models.Position(c.Query("position")),
		Team:     c.Query("team"),
		Search:   c.Query("search"),
	}

	if filter.Position != "" && !models.ValidPosition(filter.Position) {
		utils.SendValidationError(c, "Invalid position filter", "expected one of QB, RB, WR, TE")
		return
	}

	players, err := h.players.List(c.Request.Context(), filter)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch players")
		return
	}

	utils.SendSuccessWithMeta(c, players, &utils.Meta{Total: len(players)})
}

// GetPlayer returns a single player by ID.
func (h *PlayerHandler) GetPlayer(c *gin.Context) {
	playerID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid player ID", err.Error())
		return
	}

	player, err := h.players.ByID(c.Request.Context(), uint(playerID))
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch player")
		return
	}
	if player == nil {
		utils.SendNotFound(c, "Player not found")
		return
	}

	utils.SendSuccess(c, player)
}
