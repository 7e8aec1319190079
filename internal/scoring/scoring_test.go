package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFantasyPoints(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]float64
		want float64
	}{
		{
			name: "passing line",
			raw:  map[string]float64{KeyPassYd: 4000, KeyPassTD: 30, KeyPassInt: 10},
			want: 0.04*4000 + 4*30 - 10,
		},
		{
			name: "receiving line with PPR",
			raw:  map[string]float64{KeyRec: 90, KeyRecYd: 1200, KeyRecTD: 8},
			want: 90 + 0.1*1200 + 6*8,
		},
		{
			name: "rushing line with a fumble",
			raw:  map[string]float64{KeyRushYd: 1100, KeyRushTD: 9, KeyFumLost: 2},
			want: 0.1*1100 + 6*9 - 2*2,
		},
		{
			name: "empty line scores zero",
			raw:  map[string]float64{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FantasyPoints(tt.raw), 0.0001)
		})
	}
}

func TestPointsPerGame(t *testing.T) {
	assert.InDelta(t, 17.0, PointsPerGame(272, 16), 0.0001)
	assert.Zero(t, PointsPerGame(100, 0), "zero games never divides")
}

func TestGamesPlayed(t *testing.T) {
	assert.Equal(t, 17, GamesPlayed(map[string]float64{KeyGames: 17}))
	assert.Zero(t, GamesPlayed(map[string]float64{}))
}
