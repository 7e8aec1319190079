package handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dynastycap/capmanager/internal/models"
	"github.com/dynastycap/capmanager/internal/repository"
	"github.com/dynastycap/capmanager/internal/services"
	"github.com/dynastycap/capmanager/internal/valuation"
	"github.com/dynastycap/capmanager/pkg/config"
	"github.com/dynastycap/capmanager/pkg/utils"
)

// valuationCache is the slice of the cache service the handler needs.
// services.CacheService satisfies it.
type valuationCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type ValuationHandler struct {
	engine  *valuation.Engine
	players *repository.PlayerRepository
	cache   valuationCache
	cfg     *config.Config
	logger  *logrus.Logger
}

func NewValuationHandler(
	engine *valuation.Engine,
	players *repository.PlayerRepository,
	cache valuationCache,
	cfg *config.Config,
	logger *logrus.Logger,
) *ValuationHandler {
	return &ValuationHandler{
		engine:  engine,
		players: players,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
}

type estimateRequest struct {
	PlayerID       uint   `json:"player_id" binding:"required"`
	Season         string `json:"season"`
	Age            int    `json:"age"`
	PreviousSalary int    `json:"previous_salary"`
}

// EstimateContract prices a player against the current market. Not cached:
// the request carries caller-supplied age and previous-salary overrides.
func (h *ValuationHandler) EstimateContract(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid estimate request", err.Error())
		return
	}

	season := req.Season
	if season == "" {
		season = h.cfg.CurrentSeason
	}

	player, err := h.players.ByID(c.Request.Context(), req.PlayerID)
	if err != nil {
		utils.SendInternalError(c, "Failed to load player")
		return
	}
	if player == nil {
		utils.SendNotFound(c, "Player not found")
		return
	}

	estimate, err := h.engine.Estimate(c.Request.Context(), valuation.EstimateRequest{
		Player:         player,
		Season:         season,
		Age:            req.Age,
		PreviousSalary: req.PreviousSalary,
	})
	if err != nil {
		h.logger.Errorf("Estimate failed for player %d: %v", req.PlayerID, err)
		utils.SendInternalError(c, "Failed to compute estimate")
		return
	}

	utils.SendSuccess(c, gin.H{
		"estimate":       estimate,
		"reasoning_text": valuation.RenderReasoning(estimate.Reasoning),
	})
}

// EvaluateContract compares one contract's salary to market value. Results
// are cached briefly: an evaluation reruns the comparable search for the
// whole position pool.
func (h *ValuationHandler) EvaluateContract(c *gin.Context) {
	contractID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid contract ID", err.Error())
		return
	}

	season := c.DefaultQuery("season", h.cfg.CurrentSeason)
	cacheKey := services.EvaluationCacheKey(uint(contractID), season)
	ctx := c.Request.Context()

	var cached valuation.Evaluation
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	} else if !errors.Is(err, services.ErrCacheMiss) {
		h.logger.Warnf("Evaluation cache read failed: %v", err)
	}

	eval, err := h.engine.Evaluate(ctx, uint(contractID), season)
	if err != nil {
		h.logger.Errorf("Evaluation failed for contract %d: %v", contractID, err)
		utils.SendInternalError(c, "Failed to evaluate contract")
		return
	}
	if eval == nil {
		utils.SendNotFound(c, "Nothing to evaluate: contract missing or pending")
		return
	}

	if err := h.cache.Set(ctx, cacheKey, eval, h.cfg.ValuationCacheTTL); err != nil {
		h.logger.Warnf("Evaluation cache write failed: %v", err)
	}

	utils.SendSuccess(c, eval)
}

// GetRankings returns the league-wide value ranking. The full pass evaluates
// every contract, so results are cached briefly in redis.
func (h *ValuationHandler) GetRankings(c *gin.Context) {
	season := c.DefaultQuery("season", h.cfg.CurrentSeason)
	cacheKey := services.RankingsCacheKey(season)
	ctx := c.Request.Context()

	var cached []valuation.Evaluation
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
		utils.SendSuccessWithMeta(c, cached, &utils.Meta{Total: len(cached)})
		return
	} else if !errors.Is(err, services.ErrCacheMiss) {
		h.logger.Warnf("Rankings cache read failed: %v", err)
	}

	rankings, err := h.engine.RankLeague(ctx, season)
	if err != nil {
		h.logger.Errorf("League ranking failed for season %s: %v", season, err)
		utils.SendInternalError(c, "Failed to rank league contracts")
		return
	}

	if err := h.cache.Set(ctx, cacheKey, rankings, h.cfg.ValuationCacheTTL); err != nil {
		h.logger.Warnf("Rankings cache write failed: %v", err)
	}

	utils.SendSuccessWithMeta(c, rankings, &utils.Meta{Total: len(rankings)})
}

// GetValuationBoard returns fast-path estimates for the player pool,
// optionally narrowed to one position. No comparable search per row, so the
// board is cheap enough to skip caching.
func (h *ValuationHandler) GetValuationBoard(c *gin.Context) {
	season := c.DefaultQuery("season", h.cfg.CurrentSeason)

	var filter repository.PlayerFilter
	if raw := c.Query("position"); raw != "" {
		pos := models.Position(raw)
		if !models.ValidPosition(pos) {
			utils.SendValidationError(c, "Invalid position", "expected one of QB, RB, WR, TE")
			return
		}
		filter.Position = pos
	}

	players, err := h.players.List(c.Request.Context(), filter)
	if err != nil {
		utils.SendInternalError(c, "Failed to load players")
		return
	}

	board, err := h.engine.ValuationBoard(c.Request.Context(), players, season)
	if err != nil {
		h.logger.Errorf("Valuation board failed for season %s: %v", season, err)
		utils.SendInternalError(c, "Failed to build valuation board")
		return
	}

	utils.SendSuccessWithMeta(c, board, &utils.Meta{Total: len(board)})
}

// GetFranchiseTag computes the tag salary for a position. Tag salaries only
// move when contracts change, so results are cached.
func (h *ValuationHandler) GetFranchiseTag(c *gin.Context) {
	pos := models.Position(c.Param("position"))
	if !models.ValidPosition(pos) {
		utils.SendValidationError(c, "Invalid position", "expected one of QB, RB, WR, TE")
		return
	}

	season := c.DefaultQuery("season", h.cfg.CurrentSeason)
	cacheKey := services.FranchiseTagCacheKey(pos, season)
	ctx := c.Request.Context()

	var cached valuation.TagResult
	if err := h.cache.Get(ctx, cacheKey, &cached); err == nil {
		utils.SendSuccess(c, cached)
		return
	} else if !errors.Is(err, services.ErrCacheMiss) {
		h.logger.Warnf("Franchise tag cache read failed: %v", err)
	}

	tag, err := h.engine.FranchiseTag(ctx, pos, season)
	if err != nil {
		h.logger.Errorf("Franchise tag failed for %s %s: %v", pos, season, err)
		utils.SendInternalError(c, "Failed to compute franchise tag")
		return
	}

	if err := h.cache.Set(ctx, cacheKey, tag, h.cfg.ValuationCacheTTL); err != nil {
		h.logger.Warnf("Franchise tag cache write failed: %v", err)
	}

	utils.SendSuccess(c, tag)
}
