// Package notify renders transitions and digests into messages for the chat
// surface. The surface is a plain webhook; delivery is best-effort.
package notify

import (
	"context"
	"fmt"

	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/rank"
)

// GameStart describes a detected game start for rendering.
type GameStart struct {
	Player       *model.Player
	QueueLabel   string
	ChampionName string
	IconURL      string
}

// GameEnd describes a resolved game end for rendering.
type GameEnd struct {
	Player     *model.Player
	QueueLabel string
	Outcome    model.Outcome
	IconURL    string
	Standing   model.Standing // post-game standing for the outcome's queue
}

// Notifier delivers rendered messages to one channel.
type Notifier interface {
	GameStarted(ctx context.Context, ev GameStart) error
	GameEnded(ctx context.Context, ev GameEnd) error
	Digest(ctx context.Context, date string, rows []rank.DigestRow) error
}

// standingLine formats a standing like "GOLD II - 40 LP".
func standingLine(s model.Standing) string {
	if !s.Ranked() {
		return "Unranked"
	}
	if s.Division == "" {
		return fmt.Sprintf("%s - %d LP", s.Tier, s.Points)
	}
	return fmt.Sprintf("%s %s - %d LP", s.Tier, s.Division, s.Points)
}

// winrate formats cumulative wins and losses like "12W 8L (60.0%)".
func winrate(wins, losses int) string {
	total := wins + losses
	if total == 0 {
		return "0W 0L (0%)"
	}
	return fmt.Sprintf("%dW %dL (%.1f%%)", wins, losses, float64(wins)/float64(total)*100)
}
