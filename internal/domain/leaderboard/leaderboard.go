// Package leaderboard implements the pure ordering of ranked standings.
package leaderboard

import (
	"sort"

	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
)

// Row is one leaderboard line.
type Row struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Tier     string `json:"tier"`
	Division string `json:"division"`
	Points   int    `json:"points"`
}

// Sort orders rows in place: tier first (higher skill tiers sort earlier),
// then division, then LP descending for ranked rows. Unranked rows always
// sort last regardless of their raw point value. The sort is stable, so ties
// keep their input order. Positions are assigned afterwards, starting at 1.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := queues.TierRank(rows[i].Tier), queues.TierRank(rows[j].Tier)
		if ti != tj {
			return ti < tj
		}
		di, dj := queues.DivisionRank(rows[i].Division), queues.DivisionRank(rows[j].Division)
		if di != dj {
			return di < dj
		}
		return sortPoints(rows[i]) > sortPoints(rows[j])
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
}

// sortPoints forces a sentinel for unranked rows so raw LP never reorders
// them among themselves.
func sortPoints(r Row) int {
	if r.Tier == model.TierUnranked || queues.TierRank(r.Tier) == queues.TierRank("") {
		return 0
	}
	return r.Points
}
