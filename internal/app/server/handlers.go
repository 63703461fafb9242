package server

import (
	"encoding/json"
	"net/http"

	"github.com/ecard-vn/ecard/internal/domains/entities"
	"github.com/gorilla/mux"
)

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *server) handleJoinMatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserId   string `json:"user_id"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.UserId == "" || request.Username == "" {
		writeError(w, http.StatusBadRequest, "Missing user_id or username")
		return
	}

	resp, err := s.engine.JoinMatch(r.Context(), request.UserId, request.Username)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleCheckMatch(w http.ResponseWriter, r *http.Request) {
	userId := mux.Vars(r)["userId"]
	resp, err := s.engine.CheckMatch(r.Context(), userId)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handlePlayCard(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchId string `json:"match_id"`
		UserId  string `json:"user_id"`
		Card    string `json:"card"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.MatchId == "" || request.UserId == "" || request.Card == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	resp, err := s.engine.PlayCard(
		r.Context(),
		request.MatchId,
		request.UserId,
		entities.Card(request.Card),
	)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleGameState(w http.ResponseWriter, r *http.Request) {
	matchId := mux.Vars(r)["matchId"]
	resp, err := s.engine.GetGameState(r.Context(), matchId)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleLeaveMatch(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchId string `json:"match_id"`
		UserId  string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if request.MatchId == "" || request.UserId == "" {
		writeError(w, http.StatusBadRequest, "Missing match_id or user_id")
		return
	}

	resp, err := s.engine.LeaveMatch(r.Context(), request.MatchId, request.UserId)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleCleanup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Cleanup(r.Context()))
}
