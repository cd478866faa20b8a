// Package repository provides durable storage for tracked players and their
// standings, plus the in-memory Registry the sweep reads from.
package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/riftwatch/riftwatch/internal/domain/model"
)

//go:embed schema.sql
var schemaSQL string

// Store persists players in SQLite. WAL mode allows concurrent reads while
// the sweep writes.
type Store struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at path and applies pragmas and
// the schema. Idempotent.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the sweep/digest write pattern.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadPlayers reads every persisted player, in registration order.
func (s *Store) LoadPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT puuid, name,
		       solo_tier, solo_division, solo_points, solo_delta, solo_wins, solo_losses,
		       flex_tier, flex_division, flex_points, flex_delta, flex_wins, flex_losses
		FROM players
		ORDER BY registered_at, puuid
	`)
	if err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	defer rows.Close()

	var players []*model.Player
	for rows.Next() {
		p := &model.Player{}
		if err := rows.Scan(
			&p.PUUID, &p.Name,
			&p.Solo.Tier, &p.Solo.Division, &p.Solo.Points, &p.Solo.Delta, &p.Solo.Wins, &p.Solo.Losses,
			&p.Flex.Tier, &p.Flex.Division, &p.Flex.Points, &p.Flex.Delta, &p.Flex.Wins, &p.Flex.Losses,
		); err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load players: %w", err)
	}
	return players, nil
}

// UpsertPlayer writes a player and its standings, inserting or replacing by
// PUUID.
func (s *Store) UpsertPlayer(ctx context.Context, p *model.Player) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO players
		(puuid, name,
		 solo_tier, solo_division, solo_points, solo_delta, solo_wins, solo_losses,
		 flex_tier, flex_division, flex_points, flex_delta, flex_wins, flex_losses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(puuid) DO UPDATE SET
		 name = excluded.name,
		 solo_tier = excluded.solo_tier, solo_division = excluded.solo_division,
		 solo_points = excluded.solo_points, solo_delta = excluded.solo_delta,
		 solo_wins = excluded.solo_wins, solo_losses = excluded.solo_losses,
		 flex_tier = excluded.flex_tier, flex_division = excluded.flex_division,
		 flex_points = excluded.flex_points, flex_delta = excluded.flex_delta,
		 flex_wins = excluded.flex_wins, flex_losses = excluded.flex_losses,
		 updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
	`,
		p.PUUID, p.Name,
		p.Solo.Tier, p.Solo.Division, p.Solo.Points, p.Solo.Delta, p.Solo.Wins, p.Solo.Losses,
		p.Flex.Tier, p.Flex.Division, p.Flex.Points, p.Flex.Delta, p.Flex.Wins, p.Flex.Losses,
	)
	if err != nil {
		return fmt.Errorf("upsert player %s: %w", p.PUUID, err)
	}
	return nil
}
