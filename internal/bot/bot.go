// Package bot provides automated players that can fill seats at a table.
// Each bot implements game.AutomatedPlayer: it is handed the legal action
// set and the betting round so far, and returns one action. Bots never see
// the countdown; their decisions are taken immediately.
package bot

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/lox/holdemchat/internal/game"
)

// Seat creates a seated player driven by the given bot
func Seat(name string, chips int, automated game.AutomatedPlayer) *game.Player {
	player := game.NewPlayer(uuid.NewString(), name, chips)
	player.Automated = automated
	return player
}

// SeatMany seats count bots alternating between weak and aggro styles,
// named bot1..botN.
func SeatMany(count, chips int) []*game.Player {
	players := make([]*game.Player, count)
	for i := range players {
		name := fmt.Sprintf("bot%d", i+1)
		if i%2 == 0 {
			players[i] = Seat(name, chips, NewWeakBot())
		} else {
			players[i] = Seat(name, chips, NewAggroBot())
		}
	}
	return players
}
