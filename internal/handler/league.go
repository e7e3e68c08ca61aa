package handler

import (
	"net/http"

	"party-score-tracker/internal/service"
)

// LeagueHandler handles leaderboard reads and league finalization.
type LeagueHandler struct {
	leaderboards *service.LeaderboardService
	leagues      *service.LeagueService
}

// NewLeagueHandler creates a new LeagueHandler.
func NewLeagueHandler(leaderboards *service.LeaderboardService, leagues *service.LeagueService) *LeagueHandler {
	return &LeagueHandler{
		leaderboards: leaderboards,
		leagues:      leagues,
	}
}

// GetLeaderboard handles GET /groups/{groupID}/leaderboard.
func (h *LeagueHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	entries, err := h.leaderboards.GetLeaderboard(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// FinalizeLeague handles POST /groups/{groupID}/finalize.
func (h *LeagueHandler) FinalizeLeague(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	bonuses, err := h.leagues.FinalizeLeague(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bonuses)
}
