package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dynastycap/capmanager/internal/api/handlers"
	"github.com/dynastycap/capmanager/internal/repository"
	"github.com/dynastycap/capmanager/internal/services"
	"github.com/dynastycap/capmanager/internal/valuation"
	"github.com/dynastycap/capmanager/pkg/config"
	"github.com/dynastycap/capmanager/pkg/database"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(
	group *gin.RouterGroup,
	db *database.DB,
	cache *services.CacheService,
	resolver *services.StatsResolver,
	statsSync *services.StatsSyncService,
	cfg *config.Config,
	logger *logrus.Logger,
) {
	// Repositories
	contractRepo := repository.NewContractRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	leagueRepo := repository.NewLeagueRepository(db)

	// Valuation engine
	engine := valuation.NewEngine(contractRepo, resolver, logger)

	// Handlers
	playerHandler := handlers.NewPlayerHandler(playerRepo)
	contractHandler := handlers.NewContractHandler(contractRepo)
	teamHandler := handlers.NewTeamHandler(leagueRepo, contractRepo, cfg)
	tradeHandler := handlers.NewTradeHandler(leagueRepo)
	valuationHandler := handlers.NewValuationHandler(engine, playerRepo, cache, cfg, logger)
	adminHandler := handlers.NewAdminHandler(statsSync, resolver, cfg, logger)

	// Player endpoints
	group.GET("/players", playerHandler.ListPlayers)
	group.GET("/players/:id", playerHandler.GetPlayer)

	// Contract endpoints
	group.GET("/contracts", contractHandler.ListContracts)
	group.GET("/contracts/:id", contractHandler.GetContract)

	// Team and league asset endpoints
	group.GET("/teams", teamHandler.ListTeams)
	group.GET("/teams/:id/cap", teamHandler.GetCapSummary)
	group.GET("/picks", teamHandler.ListDraftPicks)
	group.GET("/trades", tradeHandler.ListTrades)
	group.GET("/trades/:id", tradeHandler.GetTrade)

	// Valuation endpoints
	group.POST("/valuation/estimate", valuationHandler.EstimateContract)
	group.GET("/valuation/contracts/:id", valuationHandler.EvaluateContract)
	group.GET("/valuation/rankings", valuationHandler.GetRankings)
	group.GET("/valuation/board", valuationHandler.GetValuationBoard)
	group.GET("/valuation/franchise-tag/:position", valuationHandler.GetFranchiseTag)

	// Operator endpoints (should be protected by the gateway in production)
	group.POST("/admin/stats/sync", adminHandler.TriggerStatsSync)
	group.POST("/admin/stats/cache/clear", adminHandler.ClearStatsCache)
}
