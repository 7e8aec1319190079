package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dynastycap/capmanager/internal/repository"
	"github.com/dynastycap/capmanager/pkg/utils"
)

type TradeHandler struct {
	league *repository.LeagueRepository
}

func NewTradeHandler(league *repository.LeagueRepository) *TradeHandler {
	return &TradeHandler{league: league}
}

func (h *TradeHandler) ListTrades(c *gin.Context) {
	trades, err := h.league.Trades(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch trades")
		return
	}
	utils.SendSuccessWithMeta(c, trades, &utils.Meta{Total: len(trades)})
}

func (h *TradeHandler) GetTrade(c *gin.Context) {
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid trade ID", err.Error())
		return
	}

	trade, err := h.league.TradeByID(c.Request.Context(), tradeID)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch trade")
		return
	}
	if trade == nil {
		utils.SendNotFound(c, "Trade not found")
		return
	}

	utils.SendSuccess(c, trade)
}
