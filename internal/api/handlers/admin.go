package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/dynastycap/capmanager/internal/services"
	"github.com/dynastycap/capmanager/pkg/config"
	"github.com/dynastycap/capmanager/pkg/utils"
)

// AdminHandler exposes operator actions: manual stats sync and cache clears.
type AdminHandler struct {
	sync     *services.StatsSyncService
	resolver *services.StatsResolver
	cfg      *config.Config
	logger   *logrus.Logger
}

func NewAdminHandler(sync *services.StatsSyncService, resolver *services.StatsResolver, cfg *config.Config, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		sync:     sync,
		resolver: resolver,
		cfg:      cfg,
		logger:   logger,
	}
}

// TriggerStatsSync runs a stats sync immediately.
func (h *AdminHandler) TriggerStatsSync(c *gin.Context) {
	season := c.DefaultQuery("season", h.cfg.CurrentSeason)

	updated, err := h.sync.SyncSeason(c.Request.Context(), season)
	if err != nil {
		h.logger.Errorf("Manual stats sync failed: %v", err)
		utils.SendUpstreamError(c, "Stats sync failed")
		return
	}

	utils.SendSuccess(c, gin.H{
		"season":          season,
		"players_updated": updated,
	})
}

// ClearStatsCache drops the in-process season stats cache, forcing a refetch
// on the next valuation request.
func (h *AdminHandler) ClearStatsCache(c *gin.Context) {
	h.resolver.ClearCache()
	utils.SendSuccess(c, gin.H{"cleared": true})
}
