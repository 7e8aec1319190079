package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/dynastycap/capmanager/internal/repository"
)

// StatsSyncService periodically copies the provider's season stat table onto
// the players table, maintaining the fallback aggregates the resolver uses
// when the provider has no data. Both paths score stats through the same
// formula, so the two never drift.
type StatsSyncService struct {
	provider SeasonStatsProvider
	players  *repository.PlayerRepository
	resolver *StatsResolver
	logger   *logrus.Logger
	cron     *cron.Cron
	season   func() string

	mu        sync.Mutex
	isRunning bool
	lastSync  time.Time
}

func NewStatsSyncService(
	provider SeasonStatsProvider,
	players *repository.PlayerRepository,
	resolver *StatsResolver,
	logger *logrus.Logger,
	currentSeason func() string,
) *StatsSyncService {
	return &StatsSyncService{
		provider: provider,
		players:  players,
		resolver: resolver,
		logger:   logger,
		cron:     cron.New(),
		season:   currentSeason,
	}
}

// Start schedules the nightly sync.
func (s *StatsSyncService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("stats sync is already running")
	}

	// Nightly, after the final games of the week have settled
	if _, err := s.cron.AddFunc("0 4 * * *", s.runScheduledSync); err != nil {
		return fmt.Errorf("failed to schedule stats sync: %w", err)
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Stats sync service started")
	return nil
}

// Stop halts the scheduled sync.
func (s *StatsSyncService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Stats sync service stopped")
}

func (s *StatsSyncService) runScheduledSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.SyncSeason(ctx, s.season()); err != nil {
		s.logger.Errorf("Scheduled stats sync failed: %v", err)
	}
}

// SyncSeason fetches the season table and writes each tracked player's
// aggregates. Returns the number of players updated. Also called from the
// admin endpoint for manual refreshes.
func (s *StatsSyncService) SyncSeason(ctx context.Context, season string) (int, error) {
	s.logger.Infof("Starting stats sync for season %s", season)

	table, err := s.provider.FetchSeason(ctx, season)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch season stats: %w", err)
	}

	tracked, err := s.players.List(ctx, repository.PlayerFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list players: %w", err)
	}

	updated := 0
	for _, player := range tracked {
		stats, ok := table[player.SleeperID]
		if !ok || !stats.HasData() {
			continue
		}
		if err := s.players.UpdateSeasonStats(ctx, player.SleeperID, season, stats); err != nil {
			s.logger.Warnf("Failed to update stats for player %s: %v", player.SleeperID, err)
			continue
		}
		updated++
	}

	// Force the resolver to pick up fresh data on the next request
	s.resolver.ClearCache()

	s.mu.Lock()
	s.lastSync = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Infof("Stats sync complete: %d/%d players updated", updated, len(tracked))
	return updated, nil
}

// LastSync returns the completion time of the most recent sync, zero if none
// has run.
func (s *StatsSyncService) LastSync() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSync
}
