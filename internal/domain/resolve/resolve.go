// Package resolve recovers the outcome of a session that just ended. The
// live-game endpoint carries no result data, so the resolver goes through the
// historical match endpoints, which may not have indexed the game yet.
package resolve

import (
	"context"
	"fmt"

	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/queues"
)

// Participant is one player's line in a finished match.
type Participant struct {
	PUUID    string
	Champion string
	Kills    int
	Deaths   int
	Assists  int
	Win      bool
}

// Match is the detail record for one finished match.
type Match struct {
	ID           string
	Queue        int
	Participants []Participant
}

// MatchSource provides access to the historical match endpoints.
type MatchSource interface {
	// RecentMatchIDs returns up to count match ids, most recent first.
	RecentMatchIDs(ctx context.Context, puuid string, count int) ([]string, error)

	// Match fetches the full detail for one match id.
	Match(ctx context.Context, id string) (Match, error)
}

// Resolver performs a single resolution attempt per ended session. The
// contract is deliberately stateless so a retrying caller can be layered on
// top without changing it.
type Resolver struct {
	source MatchSource
}

// New constructs a Resolver over the given match source.
func New(source MatchSource) *Resolver {
	return &Resolver{source: source}
}

// Resolve recovers the outcome of the most recent match for a player.
// It fails with ErrNoRecentMatch when the match endpoint has not indexed the
// game yet, with ErrQueueNotMonitored when the recovered match is out of
// policy, and with ErrParticipantNotFound when the player is absent from the
// participant list.
func (r *Resolver) Resolve(ctx context.Context, puuid string) (model.Outcome, error) {
	ids, err := r.source.RecentMatchIDs(ctx, puuid, 1)
	if err != nil {
		return model.Outcome{}, fmt.Errorf("list recent matches: %w", err)
	}
	if len(ids) == 0 {
		return model.Outcome{}, ErrNoRecentMatch
	}

	match, err := r.source.Match(ctx, ids[0])
	if err != nil {
		return model.Outcome{}, fmt.Errorf("fetch match %s: %w", ids[0], err)
	}

	if !queues.Monitored(match.Queue) {
		return model.Outcome{}, fmt.Errorf("match %s queue %d: %w", match.ID, match.Queue, ErrQueueNotMonitored)
	}

	for _, part := range match.Participants {
		if part.PUUID != puuid {
			continue
		}
		return model.Outcome{
			MatchID:  match.ID,
			Queue:    match.Queue,
			Champion: part.Champion,
			Kills:    part.Kills,
			Deaths:   part.Deaths,
			Assists:  part.Assists,
			Win:      part.Win,
		}, nil
	}

	// The id list was scoped to this player, so this should not happen.
	return model.Outcome{}, fmt.Errorf("match %s: %w", match.ID, ErrParticipantNotFound)
}
