package entities

import "time"

type Card string

const (
	CardEmperor Card = "Emperor"
	CardCitizen Card = "Citizen"
	CardSlave   Card = "Slave"
)

// Cards returns the closed set of playable card kinds.
func Cards() []Card {
	return []Card{CardEmperor, CardCitizen, CardSlave}
}

func (c Card) Valid() bool {
	switch c {
	case CardEmperor, CardCitizen, CardSlave:
		return true
	}
	return false
}

const (
	MatchStatusPlaying  = "playing"
	MatchStatusFinished = "finished"

	MaxTurns = 5
)

type PlayerSlot struct {
	Hand   []Card `dynamodbav:"hand" json:"hand"`
	Played []Card `dynamodbav:"played" json:"played"`
	Score  int    `dynamodbav:"score" json:"score"`
}

type RoundRecord struct {
	Turn        int    `dynamodbav:"turn" json:"turn"`
	Player1Card Card   `dynamodbav:"player1_card" json:"player1_card"`
	Player2Card Card   `dynamodbav:"player2_card" json:"player2_card"`
	Winner      string `dynamodbav:"winner" json:"winner"`
}

type GameState struct {
	Player1     PlayerSlot    `dynamodbav:"player1" json:"player1"`
	Player2     PlayerSlot    `dynamodbav:"player2" json:"player2"`
	CurrentTurn int           `dynamodbav:"current_turn" json:"current_turn"`
	MaxTurns    int           `dynamodbav:"max_turns" json:"max_turns"`
	History     []RoundRecord `dynamodbav:"history" json:"history"`
}

type Match struct {
	Id              string    `dynamodbav:"id" json:"id"`
	Player1Id       string    `dynamodbav:"player1_id" json:"player1_id"`
	Player2Id       string    `dynamodbav:"player2_id" json:"player2_id"`
	Player1Username string    `dynamodbav:"player1_username" json:"player1_username"`
	Player2Username string    `dynamodbav:"player2_username" json:"player2_username"`
	Status          string    `dynamodbav:"status" json:"status"`
	GameState       GameState `dynamodbav:"game_state" json:"game_state"`
	CreatedAt       time.Time `dynamodbav:"created_at" json:"created_at"`
}

// NewGameState returns the initial state: each side holds one Emperor,
// three Citizens and one Slave, one card per turn.
func NewGameState() GameState {
	return GameState{
		Player1:     newPlayerSlot(),
		Player2:     newPlayerSlot(),
		CurrentTurn: 1,
		MaxTurns:    MaxTurns,
		History:     []RoundRecord{},
	}
}

func newPlayerSlot() PlayerSlot {
	return PlayerSlot{
		Hand:   []Card{CardEmperor, CardCitizen, CardCitizen, CardCitizen, CardSlave},
		Played: []Card{},
		Score:  0,
	}
}

// Clone returns a deep copy. Slot slices are never shared between the
// registry and callers.
func (m Match) Clone() Match {
	clone := m
	clone.GameState = m.GameState.Clone()
	return clone
}

func (gs GameState) Clone() GameState {
	clone := gs
	clone.Player1 = gs.Player1.Clone()
	clone.Player2 = gs.Player2.Clone()
	clone.History = append([]RoundRecord{}, gs.History...)
	return clone
}

func (ps PlayerSlot) Clone() PlayerSlot {
	clone := ps
	clone.Hand = append([]Card{}, ps.Hand...)
	clone.Played = append([]Card{}, ps.Played...)
	return clone
}
