package game

import "github.com/lox/holdemchat/internal/deck"

// AutomatedPlayer is the capability that lets a seat act without a human
// behind it. An automated player's decision is taken immediately and is not
// subject to the action countdown.
type AutomatedPlayer interface {
	GetAction(available []ActionName, previous []Action) Action
}

// Player is a seat at the table. Chips persist across hands within a game;
// the in-hand flags are reset at hand and round boundaries. All chip and pot
// mutation goes through the PotManager — nothing else writes Chips.
type Player struct {
	ID   string
	Name string

	Chips      int
	InHand     bool
	InRound    bool
	AllIn      bool
	IsBettor   bool
	HasOption  bool
	LastAction *Action

	HoleCards []deck.Card

	// Automated, when non-nil, makes this an automated seat.
	Automated AutomatedPlayer
}

// NewPlayer creates a seated player with a starting stack
func NewPlayer(id, name string, chips int) *Player {
	return &Player{ID: id, Name: name, Chips: chips}
}

// CanAct reports whether the player can still take actions this round
func (p *Player) CanAct() bool {
	return p.InHand && !p.AllIn
}
