// Package queues holds the static queue configuration shared by the
// transition detector, the outcome resolver and notification formatting.
// The allow-list lives here so a queue that is never tracked at game start
// is also never tracked at game end.
package queues

// Riot queue configuration codes for the monitored ranked queues.
const (
	SoloQueueID = 420
	FlexQueueID = 440
)

// League endpoint queueType strings for the same queues.
const (
	SoloQueueType = "RANKED_SOLO_5x5"
	FlexQueueType = "RANKED_FLEX_SR"
)

// Info describes one queue code.
type Info struct {
	Label     string // human label used in notifications
	Monitored bool   // whether transitions in this queue are tracked
}

// table maps queue codes to their configuration. Codes absent from the table
// are not monitored.
var table = map[int]Info{
	SoloQueueID: {Label: "SoloQ", Monitored: true},
	FlexQueueID: {Label: "FlexQ", Monitored: true},
}

// Monitored reports whether transitions in the given queue are tracked.
func Monitored(code int) bool {
	return table[code].Monitored
}

// Label returns the human label for a queue code, or "Queue <code>" style
// fallback handled by callers; unknown codes return an empty label.
func Label(code int) string {
	return table[code].Label
}

// tierRank orders tiers with lower numbers meaning higher skill. Unranked
// entries sort after every ranked tier.
var tierRank = map[string]int{
	"CHALLENGER":  1,
	"GRANDMASTER": 2,
	"MASTER":      3,
	"DIAMOND":     4,
	"EMERALD":     5,
	"PLATINUM":    6,
	"GOLD":        7,
	"SILVER":      8,
	"BRONZE":      9,
	"IRON":        10,
}

// divisionRank orders divisions within a tier; I is highest, IV lowest.
var divisionRank = map[string]int{
	"I":   1,
	"II":  2,
	"III": 3,
	"IV":  4,
}

// rankSentinel sorts unknown tiers and divisions after all known ones.
const rankSentinel = 99

// TierRank returns the sort rank of a tier; lower is better.
func TierRank(tier string) int {
	if r, ok := tierRank[tier]; ok {
		return r
	}
	return rankSentinel
}

// DivisionRank returns the sort rank of a division within a tier; lower is
// better, and "no division" sorts last.
func DivisionRank(division string) int {
	if r, ok := divisionRank[division]; ok {
		return r
	}
	return rankSentinel
}
