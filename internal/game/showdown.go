package game

import (
	"github.com/lox/holdemchat/internal/deck"
	"github.com/lox/holdemchat/internal/evaluator"
)

// EvaluateHands scores each player's best 5-of-7 hand against the board and
// returns the winning outcome. Equal best scores are a true tie: every tied
// player is a winner and the pot splits. The literal five winning cards are
// recomputed by exhaustive search, since category and rank alone don't say
// which cards were used.
func EvaluateHands(players []*Player, playerHands map[string][]deck.Card, board []deck.Card) *HandOutcome {
	var winners []*Player
	var winningSeven []deck.Card
	best := evaluator.HandScore(-1)

	for _, player := range players {
		seven := make([]deck.Card, 0, 7)
		seven = append(seven, playerHands[player.ID]...)
		seven = append(seven, board...)

		_, score := evaluator.BestFive(seven)
		switch {
		case score > best:
			best = score
			winners = []*Player{player}
			winningSeven = seven
		case score == best:
			winners = append(winners, player)
		}
	}

	bestHand, _ := evaluator.BestFive(winningSeven)
	return &HandOutcome{
		Winners:    winners,
		HandName:   best.String(),
		BestHand:   bestHand,
		IsSplitPot: len(winners) > 1,
	}
}
