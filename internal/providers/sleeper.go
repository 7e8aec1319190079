package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/dynastycap/capmanager/internal/models"
	"github.com/dynastycap/capmanager/internal/scoring"
)

const defaultSleeperBaseURL = "https://api.sleeper.app"

// SleeperClient fetches season stat tables from the Sleeper API.
type SleeperClient struct {
	httpClient *http.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewSleeperClient creates a Sleeper API client. rps caps outbound request
// rate; the circuit breaker opens after consecutive upstream failures.
func NewSleeperClient(logger *logrus.Logger, timeout time.Duration, rps int) *SleeperClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if rps <= 0 {
		rps = 5
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "sleeper",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &SleeperClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultSleeperBaseURL,
		breaker:    breaker,
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		logger:     logger,
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (c *SleeperClient) SetBaseURL(url string) {
	c.baseURL = url
}

// FetchSeason returns the scored season stat table for every NFL player,
// keyed by Sleeper player ID. Raw category totals are converted to fantasy
// points with the league scoring formula.
func (c *SleeperClient) FetchSeason(ctx context.Context, season string) (map[string]models.SeasonStats, error) {
	url := fmt.Sprintf("%s/v1/stats/nfl/regular/%s", c.baseURL, season)

	var raw map[string]map[string]float64
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch season %s stats: %w", season, err)
	}

	table := make(map[string]models.SeasonStats, len(raw))
	for playerID, line := range raw {
		points := scoring.FantasyPoints(line)
		games := scoring.GamesPlayed(line)
		table[playerID] = models.SeasonStats{
			TotalPoints:   points,
			GamesPlayed:   games,
			PointsPerGame: scoring.PointsPerGame(points, games),
		}
	}

	c.logger.Infof("Fetched Sleeper stats for season %s: %d players", season, len(table))
	return table, nil
}

// getJSON performs a GET with rate limiting, circuit breaking and
// exponential backoff.
func (c *SleeperClient) getJSON(ctx context.Context, url string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		var lastErr error
		for attempt := 0; attempt < 3; attempt++ {
			if attempt > 0 {
				wait := time.Duration(math.Pow(2, float64(attempt))) * time.Second
				c.logger.Warnf("Sleeper request failed (attempt %d), waiting %v: %v", attempt, wait, lastErr)
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}

			lastErr = c.doRequest(ctx, url, target)
			if lastErr == nil {
				return nil, nil
			}
		}
		return nil, lastErr
	})
	return err
}

func (c *SleeperClient) doRequest(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
