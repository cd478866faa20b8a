package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/pkg/metrics"
)

// PlayerStore is the durable backend the Registry writes through.
type PlayerStore interface {
	LoadPlayers(ctx context.Context) ([]*model.Player, error)
	UpsertPlayer(ctx context.Context, p *model.Player) error
}

// Registry owns the tracked-player list for the process's lifetime. The sweep
// holds only read references during a tick; registration appends under the
// same serialization discipline.
type Registry struct {
	mu      sync.RWMutex
	store   PlayerStore
	players []*model.Player
	byPUUID map[string]*model.Player
}

// NewRegistry creates a Registry over the given store and loads the persisted
// players, so standings survive restarts.
func NewRegistry(ctx context.Context, store PlayerStore) (*Registry, error) {
	players, err := store.LoadPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("registry load: %w", err)
	}

	byPUUID := make(map[string]*model.Player, len(players))
	for _, p := range players {
		byPUUID[p.PUUID] = p
	}

	metrics.UpdateTrackedPlayers(len(players))

	return &Registry{
		store:   store,
		players: players,
		byPUUID: byPUUID,
	}, nil
}

// Register adds a new tracked player. Returns ErrAlreadyRegistered when the
// PUUID is already tracked; no state is mutated in that case.
func (r *Registry) Register(ctx context.Context, p *model.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byPUUID[p.PUUID]; ok {
		return ErrAlreadyRegistered
	}

	if err := r.store.UpsertPlayer(ctx, p); err != nil {
		return fmt.Errorf("persist registration: %w", err)
	}

	r.players = append(r.players, p)
	r.byPUUID[p.PUUID] = p
	metrics.UpdateTrackedPlayers(len(r.players))
	return nil
}

// List returns a copy of the tracked-player slice. The *model.Player values
// are shared; standing mutation goes through the rank tracker's lock.
func (r *Registry) List() []*model.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Player, len(r.players))
	copy(out, r.players)
	return out
}

// Count returns the number of tracked players.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Save persists one tracked player's current state.
func (r *Registry) Save(ctx context.Context, p *model.Player) error {
	return r.store.UpsertPlayer(ctx, p)
}
