package detect

import (
	"sync"

	"github.com/riftwatch/riftwatch/internal/domain/model"
)

// Directory is the authoritative in-memory map from PUUID to the last known
// active session. It exists purely to detect edges; it is cleared on process
// restart, so a session spanning a restart is never reported as ended.
type Directory struct {
	mu      sync.RWMutex
	records map[string]model.Session
}

// NewDirectory creates an empty session directory.
func NewDirectory() *Directory {
	return &Directory{
		records: make(map[string]model.Session),
	}
}

// Get returns the session record for a player, if one exists.
func (d *Directory) Get(puuid string) (model.Session, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	s, ok := d.records[puuid]
	return s, ok
}

// Put stores or replaces the session record for a player. The domain
// guarantees at most one concurrent session per player.
func (d *Directory) Put(puuid string, s model.Session) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records[puuid] = s
}

// Delete removes the session record for a player, if present.
func (d *Directory) Delete(puuid string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.records, puuid)
}

// Len returns the number of session records currently held.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}
