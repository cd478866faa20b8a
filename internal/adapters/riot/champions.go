package riot

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// Champion is one entry of the Data Dragon champion catalog.
type Champion struct {
	Slug string // URL-safe identifier, e.g. "Jinx"
	Name string // display name
}

// champCache caches the id -> champion mapping loaded once at startup.
type champCache struct {
	mu   sync.RWMutex
	byID map[int]Champion
}

// championsResponse mirrors the Data Dragon champion.json payload.
type championsResponse struct {
	Data map[string]struct {
		Key  string `json:"key"` // numeric id as a string
		ID   string `json:"id"`  // slug
		Name string `json:"name"`
	} `json:"data"`
}

// LoadChampions fetches the Data Dragon champion catalog and caches the
// id -> name/slug mapping. Data Dragon needs no API key.
func (c *Client) LoadChampions(ctx context.Context) error {
	url := fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.ddragonHost, c.ddragonVersion)

	var resp championsResponse
	if err := c.getJSON(ctx, "ddragon", url, &resp); err != nil {
		return fmt.Errorf("load champion catalog: %w", err)
	}

	byID := make(map[int]Champion, len(resp.Data))
	for _, entry := range resp.Data {
		id, err := strconv.Atoi(entry.Key)
		if err != nil {
			continue
		}
		byID[id] = Champion{Slug: entry.ID, Name: entry.Name}
	}

	c.champs.mu.Lock()
	c.champs.byID = byID
	c.champs.mu.Unlock()

	return nil
}

// ChampionByID returns the champion for an id, falling back to a synthetic
// entry when the catalog is missing or stale.
func (c *Client) ChampionByID(id int) Champion {
	c.champs.mu.RLock()
	champ, ok := c.champs.byID[id]
	c.champs.mu.RUnlock()
	if !ok {
		s := strconv.Itoa(id)
		return Champion{Slug: s, Name: "Champion " + s}
	}
	return champ
}

// ChampionIconURL returns the Data Dragon square icon for a champion slug.
func (c *Client) ChampionIconURL(slug string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", c.ddragonHost, c.ddragonVersion, slug)
}
