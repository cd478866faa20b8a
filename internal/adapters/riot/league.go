package riot

import (
	"context"
	"fmt"

	"github.com/riftwatch/riftwatch/internal/domain/rank"
)

// leagueEntry mirrors one row of the league-v4 entries payload.
type leagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// StandingsByPUUID fetches the current ranked standings for a player. A queue
// the player has no placement in is simply absent from the response.
func (c *Client) StandingsByPUUID(ctx context.Context, puuid string) ([]rank.Entry, error) {
	url := fmt.Sprintf("%s/lol/league/v4/entries/by-puuid/%s", c.platformHost, puuid)

	var resp []leagueEntry
	if err := c.getJSON(ctx, "league", url, &resp); err != nil {
		return nil, err
	}

	entries := make([]rank.Entry, 0, len(resp))
	for _, e := range resp {
		entries = append(entries, rank.Entry{
			QueueType: e.QueueType,
			Tier:      e.Tier,
			Division:  e.Rank,
			Points:    e.LeaguePoints,
			Wins:      e.Wins,
			Losses:    e.Losses,
		})
	}
	return entries, nil
}
