package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/dynastycap/capmanager/internal/models"
)

// SeasonStatsProvider fetches the scored stat table for every player in a
// season from the external stats source.
type SeasonStatsProvider interface {
	FetchSeason(ctx context.Context, season string) (map[string]models.SeasonStats, error)
}

// FallbackStatsSource returns locally synced aggregates for one player when
// the external provider has no entry for them.
type FallbackStatsSource interface {
	FallbackStats(ctx context.Context, sleeperID, season string) (models.SeasonStats, bool, error)
}

// StatsResolver produces per-player season stats, preferring a single cached
// fetch of the provider's full season table and degrading to the locally
// stored aggregates, then to zero stats. "Player not found" is never an
// error; a zero line signals low confidence downstream.
//
// Only the most recently requested season is retained: requesting a new
// season replaces the cached table. Callers interleaving seasons pay a
// refetch each time.
type StatsResolver struct {
	provider SeasonStatsProvider
	fallback FallbackStatsSource
	logger   *logrus.Logger

	group singleflight.Group

	mu     sync.RWMutex
	season string
	table  map[string]models.SeasonStats
}

func NewStatsResolver(provider SeasonStatsProvider, fallback FallbackStatsSource, logger *logrus.Logger) *StatsResolver {
	return &StatsResolver{
		provider: provider,
		fallback: fallback,
		logger:   logger,
	}
}

// Resolve returns the season stats line for a player. Concurrent callers for
// the same season share one in-flight provider fetch.
func (r *StatsResolver) Resolve(ctx context.Context, sleeperID, season string) (models.SeasonStats, error) {
	if stats, ok := r.cached(sleeperID, season); ok {
		return stats, nil
	}

	// Deduplicate concurrent season fetches. A provider failure is degraded
	// to an empty table so every lookup falls through to the local aggregates.
	_, err, _ := r.group.Do(season, func() (interface{}, error) {
		if _, ok := r.cachedSeason(season); ok {
			return nil, nil
		}

		table, err := r.provider.FetchSeason(ctx, season)
		if err != nil {
			r.logger.Warnf("Season %s stats fetch failed, degrading to local aggregates: %v", season, err)
			return nil, nil
		}

		kept := make(map[string]models.SeasonStats, len(table))
		for id, stats := range table {
			if stats.HasData() {
				kept[id] = stats
			}
		}

		r.mu.Lock()
		r.season = season
		r.table = kept
		r.mu.Unlock()

		return nil, nil
	})
	if err != nil {
		return models.SeasonStats{}, err
	}

	if stats, ok := r.cached(sleeperID, season); ok {
		return stats, nil
	}

	stats, ok, err := r.fallback.FallbackStats(ctx, sleeperID, season)
	if err != nil {
		return models.SeasonStats{}, err
	}
	if !ok {
		return models.SeasonStats{}, nil
	}
	return stats, nil
}

// ClearCache drops the cached season table, forcing a refetch on the next
// Resolve. Operator-triggered.
func (r *StatsResolver) ClearCache() {
	r.mu.Lock()
	r.season = ""
	r.table = nil
	r.mu.Unlock()
	r.logger.Info("Season stats cache cleared")
}

func (r *StatsResolver) cached(sleeperID, season string) (models.SeasonStats, bool) {
	table, ok := r.cachedSeason(season)
	if !ok {
		return models.SeasonStats{}, false
	}
	stats, ok := table[sleeperID]
	return stats, ok
}

func (r *StatsResolver) cachedSeason(season string) (map[string]models.SeasonStats, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.table == nil || r.season != season {
		return nil, false
	}
	return r.table, true
}
