package riot

import (
	"context"
	"fmt"

	"github.com/riftwatch/riftwatch/internal/domain/resolve"
)

// matchResponse mirrors the match-v5 detail payload, reduced to the fields
// the resolver consumes.
type matchResponse struct {
	Metadata struct {
		MatchID string `json:"matchId"`
	} `json:"metadata"`
	Info struct {
		QueueID      int `json:"queueId"`
		Participants []struct {
			PUUID        string `json:"puuid"`
			ChampionName string `json:"championName"`
			Kills        int    `json:"kills"`
			Deaths       int    `json:"deaths"`
			Assists      int    `json:"assists"`
			Win          bool   `json:"win"`
		} `json:"participants"`
	} `json:"info"`
}

// RecentMatchIDs returns up to count match ids for a player, most recent
// first. The match endpoint lags the live game; a just-finished game may not
// be listed yet.
func (c *Client) RecentMatchIDs(ctx context.Context, puuid string, count int) ([]string, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?start=0&count=%d", c.regionalHost, puuid, count)

	var ids []string
	if err := c.getJSON(ctx, "match_ids", url, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// Match fetches the full detail for one match id.
func (c *Client) Match(ctx context.Context, id string) (resolve.Match, error) {
	url := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.regionalHost, id)

	var resp matchResponse
	if err := c.getJSON(ctx, "match", url, &resp); err != nil {
		return resolve.Match{}, err
	}

	match := resolve.Match{
		ID:           resp.Metadata.MatchID,
		Queue:        resp.Info.QueueID,
		Participants: make([]resolve.Participant, 0, len(resp.Info.Participants)),
	}
	if match.ID == "" {
		match.ID = id
	}
	for _, p := range resp.Info.Participants {
		match.Participants = append(match.Participants, resolve.Participant{
			PUUID:    p.PUUID,
			Champion: p.ChampionName,
			Kills:    p.Kills,
			Deaths:   p.Deaths,
			Assists:  p.Assists,
			Win:      p.Win,
		})
	}
	return match, nil
}
