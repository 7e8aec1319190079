// Package scoring implements the league's point-per-reception scoring
// formula. The Sleeper provider and the stats sync job both score raw stat
// lines through this package so the fresh-fetch and database-fallback paths
// stay numerically identical.
package scoring

// Raw stat keys as returned by the Sleeper stats endpoint.
const (
	KeyPassYd   = "pass_yd"
	KeyPassTD   = "pass_td"
	KeyPassInt  = "pass_int"
	KeyRushYd   = "rush_yd"
	KeyRushTD   = "rush_td"
	KeyRec      = "rec"
	KeyRecYd    = "rec_yd"
	KeyRecTD    = "rec_td"
	KeyFumLost  = "fum_lost"
	KeyGames    = "gp"
)

// FantasyPoints scores a raw per-season stat line under PPR settings:
// 0.04/passing yard, 4/passing TD, -1/interception, 0.1/rushing or receiving
// yard, 6/rushing or receiving TD, 1/reception, -2/fumble lost.
func FantasyPoints(raw map[string]float64) float64 {
	return 0.04*raw[KeyPassYd] +
		4*raw[KeyPassTD] -
		1*raw[KeyPassInt] +
		0.1*raw[KeyRushYd] +
		6*raw[KeyRushTD] +
		1*raw[KeyRec] +
		0.1*raw[KeyRecYd] +
		6*raw[KeyRecTD] -
		2*raw[KeyFumLost]
}

// GamesPlayed extracts the games-played count from a raw stat line.
func GamesPlayed(raw map[string]float64) int {
	return int(raw[KeyGames])
}

// PointsPerGame is points/games, defined as 0 when no games were played.
func PointsPerGame(points float64, games int) float64 {
	if games == 0 {
		return 0
	}
	return points / float64(games)
}
