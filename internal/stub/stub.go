// Package stub implements a scripted fake of the Riot endpoints riftwatch
// consumes. It backs cmd/riot-stub for local runs and demos: control
// endpoints move players in and out of games, and the tracker pointed at the
// stub behaves exactly as it would against the real API.
package stub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
)

// Player is the scripted state for one fake account.
type Player struct {
	PUUID    string  `json:"puuid"`
	GameName string  `json:"game_name"`
	TagLine  string  `json:"tag_line"`
	Entries  []Entry `json:"entries"`

	// Live-game state, driven by the control endpoints.
	InGame   bool  `json:"in_game"`
	GameID   int64 `json:"game_id"`
	Queue    int   `json:"queue"`
	Champion int   `json:"champion"`

	// Finished matches, most recent first.
	Matches []Match `json:"matches"`
}

// Entry is one ranked standing row.
type Entry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Match is one finished match as served by the match endpoint.
type Match struct {
	ID           string `json:"id"`
	Queue        int    `json:"queue"`
	ChampionName string `json:"champion_name"`
	Kills        int    `json:"kills"`
	Deaths       int    `json:"deaths"`
	Assists      int    `json:"assists"`
	Win          bool   `json:"win"`
}

// Server is the in-memory fake.
type Server struct {
	mu       sync.RWMutex
	players  map[string]*Player // by puuid
	byRiotID map[string]string  // "name#tag" -> puuid
}

// NewServer creates an empty stub server.
func NewServer() *Server {
	return &Server{
		players:  make(map[string]*Player),
		byRiotID: make(map[string]string),
	}
}

// AddPlayer seeds one scripted player.
func (s *Server) AddPlayer(p *Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[p.PUUID] = p
	s.byRiotID[p.GameName+"#"+p.TagLine] = p.PUUID
}

// StartGame puts a player in game.
func (s *Server) StartGame(puuid string, gameID int64, queue, champion int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[puuid]
	if !ok {
		return false
	}
	p.InGame = true
	p.GameID = gameID
	p.Queue = queue
	p.Champion = champion
	return true
}

// EndGame takes a player out of game and records the finished match.
func (s *Server) EndGame(puuid string, match Match) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[puuid]
	if !ok {
		return false
	}
	p.InGame = false
	p.Matches = append([]Match{match}, p.Matches...)
	return true
}

// Handler returns the HTTP handler serving both the faked Riot endpoints and
// the control surface.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /riot/account/v1/accounts/by-riot-id/{name}/{tag}", s.handleAccount)
	mux.HandleFunc("GET /lol/spectator/v5/active-games/by-summoner/{puuid}", s.handleActiveGame)
	mux.HandleFunc("GET /lol/league/v4/entries/by-puuid/{puuid}", s.handleLeagueEntries)
	mux.HandleFunc("GET /lol/match/v5/matches/by-puuid/{puuid}/ids", s.handleMatchIDs)
	mux.HandleFunc("GET /lol/match/v5/matches/{id}", s.handleMatch)
	mux.HandleFunc("GET /cdn/{version}/data/en_US/champion.json", s.handleChampions)

	mux.HandleFunc("POST /control/players", s.handleControlAddPlayer)
	mux.HandleFunc("POST /control/start", s.handleControlStart)
	mux.HandleFunc("POST /control/end", s.handleControlEnd)

	return mux
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	puuid, ok := s.byRiotID[r.PathValue("name")+"#"+r.PathValue("tag")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	p := s.players[puuid]
	writeJSON(w, http.StatusOK, map[string]string{
		"puuid":    p.PUUID,
		"gameName": p.GameName,
		"tagLine":  p.TagLine,
	})
}

func (s *Server) handleActiveGame(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[r.PathValue("puuid")]
	if !ok || !p.InGame {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"gameId":            p.GameID,
		"gameQueueConfigId": p.Queue,
		"participants": []map[string]any{
			{"puuid": p.PUUID, "championId": p.Champion},
		},
	})
}

func (s *Server) handleLeagueEntries(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[r.PathValue("puuid")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	entries := p.Entries
	if entries == nil {
		entries = []Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleMatchIDs(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[r.PathValue("puuid")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	count := 1
	if c := r.URL.Query().Get("count"); c != "" {
		if n, err := strconv.Atoi(c); err == nil && n > 0 {
			count = n
		}
	}
	ids := make([]string, 0, count)
	for i, m := range p.Matches {
		if i >= count {
			break
		}
		ids = append(ids, m.ID)
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id := r.PathValue("id")
	for puuid, p := range s.players {
		for _, m := range p.Matches {
			if m.ID != id {
				continue
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"metadata": map[string]any{"matchId": m.ID},
				"info": map[string]any{
					"queueId": m.Queue,
					"participants": []map[string]any{
						{
							"puuid":        puuid,
							"championName": m.ChampionName,
							"kills":        m.Kills,
							"deaths":       m.Deaths,
							"assists":      m.Assists,
							"win":          m.Win,
						},
					},
				},
			})
			return
		}
	}
	http.NotFound(w, r)
}

func (s *Server) handleChampions(w http.ResponseWriter, _ *http.Request) {
	// A handful of entries is enough for the tracker's catalog.
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"Jinx":   map[string]string{"key": "222", "id": "Jinx", "name": "Jinx"},
			"Ahri":   map[string]string{"key": "103", "id": "Ahri", "name": "Ahri"},
			"Irelia": map[string]string{"key": "39", "id": "Irelia", "name": "Irelia"},
		},
	})
}

func (s *Server) handleControlAddPlayer(w http.ResponseWriter, r *http.Request) {
	var p Player
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.PUUID == "" {
		http.Error(w, "invalid player", http.StatusBadRequest)
		return
	}
	s.AddPlayer(&p)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleControlStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PUUID    string `json:"puuid"`
		GameID   int64  `json:"game_id"`
		Queue    int    `json:"queue"`
		Champion int    `json:"champion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !s.StartGame(req.PUUID, req.GameID, req.Queue, req.Champion) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleControlEnd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PUUID string `json:"puuid"`
		Match Match  `json:"match"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Match.ID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !s.EndGame(req.PUUID, req.Match) {
		http.NotFound(w, r)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Println("stub: encode response:", err)
	}
}
