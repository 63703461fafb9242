package engine

import "github.com/ecard-vn/ecard/internal/domains/entities"

const (
	WinnerPlayer1 = "player1"
	WinnerPlayer2 = "player2"
	WinnerTie     = "tie"
)

// beats holds the three dominance pairs: Emperor takes Citizen, Citizen
// takes Slave, Slave takes Emperor.
var beats = map[entities.Card]entities.Card{
	entities.CardEmperor: entities.CardCitizen,
	entities.CardCitizen: entities.CardSlave,
	entities.CardSlave:   entities.CardEmperor,
}

// ResolveCards decides a round. Equal cards tie, the three beats pairs go
// to player1, and every other ordered pair goes to player2. The argument
// order matters: card1 is always player1's card.
func ResolveCards(card1, card2 entities.Card) string {
	if card1 == card2 {
		return WinnerTie
	}
	if beats[card1] == card2 {
		return WinnerPlayer1
	}
	return WinnerPlayer2
}
