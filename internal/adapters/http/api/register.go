package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/riftwatch/riftwatch/internal/adapters/repository"
	"github.com/riftwatch/riftwatch/internal/app"
)

// registerRequest is the POST /register body.
type registerRequest struct {
	RiotID string `json:"riot_id"` // "Name#Tag"
}

// registerResponse acknowledges a successful registration.
type registerResponse struct {
	PUUID string `json:"puuid"`
	Name  string `json:"name"`
}

// RegisterHandler handles registration requests.
type RegisterHandler struct {
	deps Dependencies
}

// NewRegisterHandler creates a new registration handler.
func NewRegisterHandler(deps Dependencies) *RegisterHandler {
	return &RegisterHandler{deps: deps}
}

// HandleRegister handles POST /register requests. Malformed riot ids,
// unresolvable riot ids and duplicates each map to a distinct response.
func (h *RegisterHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	const op = "api.register"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.RiotID) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	player, err := h.deps.Register(r.Context(), req.RiotID)
	switch {
	case errors.Is(err, app.ErrInvalidRiotID):
		writeError(w, http.StatusBadRequest, "invalid_riot_id", err)
		return
	case errors.Is(err, app.ErrUnknownRiotID):
		writeError(w, http.StatusNotFound, "unknown_riot_id", err)
		return
	case errors.Is(err, repository.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "already_registered", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{PUUID: player.PUUID, Name: player.Name})
}
