package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestFetchSeasonScoresRawLines(t *testing.T) {
	payload := map[string]map[string]float64{
		"4046": { // a passing season
			"pass_yd":  4000,
			"pass_td":  30,
			"pass_int": 10,
			"gp":       17,
		},
		"6794": { // a receiving season
			"rec":    90,
			"rec_yd": 1200,
			"rec_td": 8,
			"gp":     16,
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/stats/nfl/regular/2025", r.URL.Path)
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	client := NewSleeperClient(testLogger(), 5*time.Second, 100)
	client.SetBaseURL(server.URL)

	table, err := client.FetchSeason(context.Background(), "2025")
	require.NoError(t, err)
	require.Len(t, table, 2)

	qb := table["4046"]
	assert.InDelta(t, 0.04*4000+4*30-10, qb.TotalPoints, 0.0001)
	assert.Equal(t, 17, qb.GamesPlayed)
	assert.InDelta(t, qb.TotalPoints/17, qb.PointsPerGame, 0.0001)

	wr := table["6794"]
	assert.InDelta(t, 90+0.1*1200+6*8, wr.TotalPoints, 0.0001)
	assert.Equal(t, 16, wr.GamesPlayed)
}

func TestFetchSeasonRetriesThenSucceeds(t *testing.T) {
	var attempts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		require.NoError(t, json.NewEncoder(w).Encode(map[string]map[string]float64{}))
	}))
	defer server.Close()

	client := NewSleeperClient(testLogger(), 5*time.Second, 100)
	client.SetBaseURL(server.URL)

	_, err := client.FetchSeason(context.Background(), "2025")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestFetchSeasonSurfacesPersistentFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewSleeperClient(testLogger(), 5*time.Second, 100)
	client.SetBaseURL(server.URL)

	_, err := client.FetchSeason(context.Background(), "2025")
	require.Error(t, err)
}
