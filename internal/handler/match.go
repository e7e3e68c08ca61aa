package handler

import (
	"net/http"
	"time"

	"party-score-tracker/internal/model"
	"party-score-tracker/internal/service"
)

// MatchHandler handles match submission and voting endpoints.
type MatchHandler struct {
	matches *service.MatchService
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matches *service.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

type submitResultRow struct {
	MemberID     int64 `json:"member_id"`
	Stars        int   `json:"stars"`
	Coins        int   `json:"coins"`
	MinigamesWon int   `json:"minigames_won"`
	ShowdownWins int   `json:"showdown_wins"`
}

type submitMatchRequest struct {
	SubmitterID int64             `json:"submitter_id"`
	MapID       int64             `json:"map_id"`
	PlayedAt    string            `json:"played_at"`
	Results     []submitResultRow `json:"results"`
}

// SubmitMatch handles POST /groups/{groupID}/matches.
func (h *MatchHandler) SubmitMatch(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	var req submitMatchRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	playedAt, err := time.Parse("2006-01-02", req.PlayedAt)
	if err != nil {
		badRequest(w, "played_at must be a YYYY-MM-DD date")
		return
	}

	rows := make([]service.ResultInput, 0, len(req.Results))
	for _, res := range req.Results {
		rows = append(rows, service.ResultInput{
			MemberID:     res.MemberID,
			Stars:        res.Stars,
			Coins:        res.Coins,
			MinigamesWon: res.MinigamesWon,
			ShowdownWins: res.ShowdownWins,
		})
	}

	match, err := h.matches.SubmitMatch(r.Context(), groupID, req.SubmitterID, req.MapID, playedAt, rows)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, match)
}

// GetMatch handles GET /matches/{matchID}.
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequest(w, "invalid match id")
		return
	}

	match, err := h.matches.GetMatch(r.Context(), matchID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// ListMatches handles GET /groups/{groupID}/matches.
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	groupID, err := idParam(r, "groupID")
	if err != nil {
		badRequest(w, "invalid group id")
		return
	}

	matches, err := h.matches.ListMatches(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

type castVoteRequest struct {
	MemberID int64  `json:"member_id"`
	Vote     string `json:"vote"`
}

// CastVote handles POST /matches/{matchID}/votes.
func (h *MatchHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequest(w, "invalid match id")
		return
	}

	var req castVoteRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	match, err := h.matches.CastVote(r.Context(), matchID, req.MemberID, model.Vote(req.Vote))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, match)
}

// ListVotes handles GET /matches/{matchID}/votes.
func (h *MatchHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	matchID, err := idParam(r, "matchID")
	if err != nil {
		badRequest(w, "invalid match id")
		return
	}

	votes, err := h.matches.ListVotes(r.Context(), matchID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, votes)
}
