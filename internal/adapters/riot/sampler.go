package riot

import (
	"context"
	"errors"
	"fmt"

	"github.com/riftwatch/riftwatch/internal/domain/detect"
)

// activeGameResponse mirrors the spectator-v5 active game payload.
type activeGameResponse struct {
	GameID            int64 `json:"gameId"`
	GameQueueConfigID int   `json:"gameQueueConfigId"`
	Participants      []struct {
		PUUID      string `json:"puuid"`
		ChampionID int    `json:"championId"`
	} `json:"participants"`
}

// Sample probes the spectator endpoint for one player. A 404 is the normal
// "not in game" answer, not an error.
func (c *Client) Sample(ctx context.Context, puuid string) (detect.Sample, error) {
	url := fmt.Sprintf("%s/lol/spectator/v5/active-games/by-summoner/%s", c.platformHost, puuid)

	var resp activeGameResponse
	if err := c.getJSON(ctx, "spectator", url, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return detect.Sample{InGame: false}, nil
		}
		return detect.Sample{}, err
	}

	sample := detect.Sample{
		InGame: true,
		GameID: resp.GameID,
		Queue:  resp.GameQueueConfigID,
	}
	for _, p := range resp.Participants {
		if p.PUUID == puuid {
			sample.Champion = p.ChampionID
			break
		}
	}
	return sample, nil
}
