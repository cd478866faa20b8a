// Package model contains domain models passed between layers.
package model

// Player represents one tracked account. The PUUID is the stable key; the
// display name may change over time and must never be used for lookups.
type Player struct {
	PUUID string // globally unique Riot identifier, stable across renames
	Name  string // "Name#Tag" display label
	Solo  Standing
	Flex  Standing
}

// Standing is a queue-scoped ranking snapshot.
//
// Delta accumulates LP diffs observed since the last digest reset. It must be
// updated in the same critical section as Points; a refresh that diffs against
// a stale Points value loses contributions.
type Standing struct {
	Tier     string // IRON..CHALLENGER, or UNRANKED
	Division string // I..IV, empty when the tier has no divisions
	Points   int    // current LP
	Delta    int    // rolling LP change since the last digest
	Wins     int    // cumulative, sourced from the league endpoint
	Losses   int    // cumulative, sourced from the league endpoint
}

// TierUnranked is the sentinel tier for players without a ranked placement.
const TierUnranked = "UNRANKED"

// UnrankedStanding returns the default standing for a queue the league
// endpoint did not report. Downstream formatting never has to branch on a
// missing queue.
func UnrankedStanding() Standing {
	return Standing{Tier: TierUnranked}
}

// Ranked reports whether the standing holds a real placement.
func (s Standing) Ranked() bool {
	return s.Tier != "" && s.Tier != TierUnranked
}

// Session is one continuous span of in-game activity, identified by the
// opaque game id reported by the spectator endpoint.
type Session struct {
	GameID   int64
	Queue    int // queue configuration code, e.g. 420 for solo queue
	Champion int // champion picked by the tracked player
}

// Outcome is the recovered result of a finished session. It lives only long
// enough to feed one notification and one standing refresh.
type Outcome struct {
	MatchID  string
	Queue    int
	Champion string
	Kills    int
	Deaths   int
	Assists  int
	Win      bool
}
