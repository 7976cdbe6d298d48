package main

import (
	"github.com/lox/holdemchat/internal/bot"
	"github.com/lox/holdemchat/internal/config"
	"github.com/lox/holdemchat/internal/game"
)

// seatBots builds the automated seats: those declared in the config file, or
// count default ones when none are configured.
func seatBots(seats []config.BotSeat, count, chips int) []*game.Player {
	if len(seats) == 0 {
		return bot.SeatMany(count, chips)
	}

	players := make([]*game.Player, 0, len(seats))
	for _, seat := range seats {
		var automated game.AutomatedPlayer
		switch seat.Style {
		case "aggro":
			automated = bot.NewAggroBot()
		default:
			automated = bot.NewWeakBot()
		}
		players = append(players, bot.Seat(seat.Name, seat.Chips, automated))
	}
	return players
}
