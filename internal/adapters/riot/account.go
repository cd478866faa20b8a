package riot

import (
	"context"
	"fmt"
	"net/url"
)

// Account is the result of a riot-id lookup.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// AccountByRiotID resolves a "Name#Tag" pair to its stable PUUID. Returns
// ErrNotFound when no such riot id exists.
func (c *Client) AccountByRiotID(ctx context.Context, name, tag string) (Account, error) {
	u := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.regionalHost, url.PathEscape(name), url.PathEscape(tag))

	var acc Account
	if err := c.getJSON(ctx, "account", u, &acc); err != nil {
		return Account{}, err
	}
	return acc, nil
}
