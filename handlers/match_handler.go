package handlers

import (
	"errors"
	"net/http"

	"github.com/Seyram02/nations-league/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"matches": matches,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatchByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.GetMatch(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"match": match,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SimulateMatch resolves a match with the quick model: final score and
// scorers only, no event timeline.
func (h *MatchHandler) SimulateMatch(w http.ResponseWriter, r *http.Request) {
	h.simulate(w, r, false)
}

// PlayMatch resolves a match with the detailed model: full event timeline,
// preview and commentary.
func (h *MatchHandler) PlayMatch(w http.ResponseWriter, r *http.Request) {
	h.simulate(w, r, true)
}

func (h *MatchHandler) simulate(w http.ResponseWriter, r *http.Request, detailed bool) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.SimulateMatch(r.Context(), matchID, detailed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"match": match,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetMatchPreview(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	preview, err := h.matchService.MatchPreview(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"preview": preview,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetPostMatchAnalysis(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	analysis, err := h.matchService.PostMatchAnalysis(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"analysis": analysis,
	}

	err = writeJSON(w, http.StatusOK, response, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetPlayerAnalysis(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	playerName := r.URL.Query().Get("player")
	if playerName == "" {
		badRequestResponse(w, r, errors.New("missing player query parameter"))
		return
	}

	analysis, err := h.matchService.PlayerAnalysis(r.Context(), matchID, playerName)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	err = writeJSON(w, http.StatusOK, analysis, nil)
	if err != nil {
		serverErrorResponse(w, r, err)
	}
}
