package game

import (
	"fmt"
	"strings"
)

// FormatHandStatus renders the fixed-width table posted to the channel
// before each action: stacks, positions, who's in the hand, last actions,
// and a pot breakdown.
func FormatHandStatus(players []*Player, acting *Player, pm *PotManager, button, smallBlind, bigBlind int) string {
	var b strings.Builder
	b.WriteString("```\n")

	nameWidth := 0
	for _, p := range players {
		if len(p.Name) > nameWidth {
			nameWidth = len(p.Name)
		}
	}

	for idx, player := range players {
		turnIndicator := "  "
		if player == acting {
			turnIndicator = "→ "
		}

		handIndicator := " "
		if player.InHand {
			handIndicator = "●"
		}

		positionIndicator := " "
		switch idx {
		case bigBlind:
			positionIndicator = "B"
		case smallBlind:
			positionIndicator = "S"
		case button:
			positionIndicator = "D"
		}

		lastAction := ""
		if player.LastAction != nil {
			lastAction = string(player.LastAction.Name)
			if player.LastAction.Amount > 0 {
				lastAction += fmt.Sprintf(" $%d", player.LastAction.Amount)
			}
		}

		fmt.Fprintf(&b, "%s%-*s  $%-5d %s %s  %s\n",
			turnIndicator, nameWidth, player.Name, player.Chips,
			handIndicator, positionIndicator, lastAction)
	}
	b.WriteString("```\n")

	for idx, pot := range pm.Pots() {
		if pot.Amount == 0 {
			continue
		}
		if idx == 0 {
			fmt.Fprintf(&b, "Main Pot: $%d\n", pot.Amount)
		} else {
			fmt.Fprintf(&b, "Side Pot: $%d\n", pot.Amount)
		}
	}

	return b.String()
}
