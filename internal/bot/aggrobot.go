package bot

import "github.com/lox/holdemchat/internal/game"

// AggroBot bets or raises at every opportunity. It leaves the amount
// unspecified, so the pot manager's correction picks the table default: a
// minimum open, or double the outstanding bet.
type AggroBot struct{}

// NewAggroBot creates an AggroBot
func NewAggroBot() *AggroBot {
	return &AggroBot{}
}

func (b *AggroBot) GetAction(available []game.ActionName, previous []game.Action) game.Action {
	for _, name := range available {
		if name == game.ActionBet || name == game.ActionRaise {
			return game.Action{Name: name}
		}
	}
	for _, name := range available {
		if name == game.ActionCall {
			return game.Action{Name: game.ActionCall}
		}
	}
	return game.Action{Name: game.ActionCheck}
}
