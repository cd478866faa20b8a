package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/riftwatch/riftwatch/internal/domain/model"
	"github.com/riftwatch/riftwatch/internal/domain/rank"
	"github.com/riftwatch/riftwatch/pkg/logger"
	"github.com/riftwatch/riftwatch/pkg/metrics"
)

// Embed colors per message kind.
const (
	colorStart  = 0x3498DB // blue
	colorWin    = 0x2ECC71 // green
	colorLoss   = 0xE74C3C // red
	colorDigest = 0xF1C40F // gold
)

const defaultWebhookTimeout = 10 * time.Second

// embedField is one labeled field of a webhook embed.
type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedThumbnail struct {
	URL string `json:"url"`
}

type embedFooter struct {
	Text string `json:"text"`
}

// embed is one structured message block in the webhook payload.
type embed struct {
	Title     string          `json:"title"`
	Color     int             `json:"color"`
	Fields    []embedField    `json:"fields,omitempty"`
	Thumbnail *embedThumbnail `json:"thumbnail,omitempty"`
	Footer    *embedFooter    `json:"footer,omitempty"`
}

type webhookPayload struct {
	Embeds []embed `json:"embeds"`
}

// DiscordWebhook delivers embeds to a Discord-compatible webhook URL.
type DiscordWebhook struct {
	url        string
	httpClient *http.Client
	log        logger.Logger
}

// Option applies a configuration option to the webhook notifier.
type Option func(*DiscordWebhook)

// WithHTTPClient sets a custom HTTP client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(d *DiscordWebhook) {
		if hc != nil {
			d.httpClient = hc
		}
	}
}

// WithLogger sets a custom logger for the notifier.
func WithLogger(log logger.Logger) Option {
	return func(d *DiscordWebhook) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDiscordWebhook creates a notifier posting to the given webhook URL.
func NewDiscordWebhook(url string, opts ...Option) *DiscordWebhook {
	d := &DiscordWebhook{
		url:        url,
		httpClient: &http.Client{Timeout: defaultWebhookTimeout},
		log:        logger.Get().Named("notify"),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// GameStarted announces a detected game start.
func (d *DiscordWebhook) GameStarted(ctx context.Context, ev GameStart) error {
	e := embed{
		Title: fmt.Sprintf("🎮 %s started a %s game", ev.Player.Name, ev.QueueLabel),
		Color: colorStart,
		Fields: []embedField{
			{Name: "Champion", Value: ev.ChampionName, Inline: true},
			{Name: "Queue", Value: ev.QueueLabel, Inline: true},
		},
	}
	if ev.IconURL != "" {
		e.Thumbnail = &embedThumbnail{URL: ev.IconURL}
	}
	return d.send(ctx, "start", webhookPayload{Embeds: []embed{e}})
}

// GameEnded announces a resolved game end with its outcome and the post-game
// standing.
func (d *DiscordWebhook) GameEnded(ctx context.Context, ev GameEnd) error {
	result := "Defeat"
	color := colorLoss
	if ev.Outcome.Win {
		result = "Victory"
		color = colorWin
	}

	e := embed{
		Title: fmt.Sprintf("🏁 %s — %s in %s", ev.Player.Name, result, ev.QueueLabel),
		Color: color,
		Fields: []embedField{
			{Name: "Champion", Value: ev.Outcome.Champion, Inline: true},
			{Name: "KDA", Value: fmt.Sprintf("%d/%d/%d", ev.Outcome.Kills, ev.Outcome.Deaths, ev.Outcome.Assists), Inline: true},
			{Name: "Rank", Value: standingLine(ev.Standing), Inline: true},
		},
		Footer: &embedFooter{Text: ev.Outcome.MatchID},
	}
	if ev.IconURL != "" {
		e.Thumbnail = &embedThumbnail{URL: ev.IconURL}
	}
	return d.send(ctx, "end", webhookPayload{Embeds: []embed{e}})
}

// Digest sends the daily summary: one embed per monitored queue with rank,
// signed LP delta and win/loss for every tracked player.
func (d *DiscordWebhook) Digest(ctx context.Context, date string, rows []rank.DigestRow) error {
	soloEmbed := embed{
		Title: fmt.Sprintf("📊 SoloQ summary for %s", date),
		Color: colorDigest,
	}
	flexEmbed := embed{
		Title: fmt.Sprintf("📊 FlexQ summary for %s", date),
		Color: colorDigest,
	}

	for _, row := range rows {
		soloEmbed.Fields = append(soloEmbed.Fields, digestField(row.Name, row.Solo))
		flexEmbed.Fields = append(flexEmbed.Fields, digestField(row.Name, row.Flex))
	}

	return d.send(ctx, "digest", webhookPayload{Embeds: []embed{soloEmbed, flexEmbed}})
}

func digestField(name string, s model.Standing) embedField {
	return embedField{
		Name: name,
		Value: fmt.Sprintf("%s (Δ %+d)\n%s",
			standingLine(s), s.Delta, winrate(s.Wins, s.Losses)),
	}
}

// send posts one payload to the webhook.
func (d *DiscordWebhook) send(ctx context.Context, kind string, payload webhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		metrics.RecordNotificationError()
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordNotificationError()
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}

	metrics.RecordNotification(kind)
	d.log.Debug(ctx, "notification delivered", logger.String("kind", kind))
	return nil
}
