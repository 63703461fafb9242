package dtos

import (
	"time"

	"github.com/ecard-vn/ecard/internal/domains/entities"
)

const (
	JoinStatusWaiting = "waiting"
	JoinStatusJoined  = "joined"
)

type JoinMatchResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	MatchId string `json:"match_id,omitempty"`
	Player1 string `json:"player1,omitempty"`
	Player2 string `json:"player2,omitempty"`
}

type MatchResponse struct {
	Id              string             `json:"id"`
	Player1Id       string             `json:"player1_id"`
	Player2Id       string             `json:"player2_id"`
	Player1Username string             `json:"player1_username"`
	Player2Username string             `json:"player2_username"`
	Status          string             `json:"status"`
	GameState       entities.GameState `json:"game_state"`
	CreatedAt       time.Time          `json:"created_at"`
}

type CheckMatchResponse struct {
	Found bool           `json:"found"`
	Match *MatchResponse `json:"match,omitempty"`
}

type PlayCardResponse struct {
	Success     bool               `json:"success"`
	GameState   entities.GameState `json:"game_state"`
	MatchStatus string             `json:"match_status"`
}

type LeaveMatchResponse struct {
	Success bool `json:"success"`
}

type CleanupResponse struct {
	Cleaned int `json:"cleaned"`
}

func MatchResponseFromEntity(match entities.Match) MatchResponse {
	return MatchResponse{
		Id:              match.Id,
		Player1Id:       match.Player1Id,
		Player2Id:       match.Player2Id,
		Player1Username: match.Player1Username,
		Player2Username: match.Player2Username,
		Status:          match.Status,
		GameState:       match.GameState,
		CreatedAt:       match.CreatedAt,
	}
}
