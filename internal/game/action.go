package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Street is a betting phase of a hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river"}[s]
}

// ActionName identifies a player action
type ActionName string

const (
	ActionCheck ActionName = "check"
	ActionCall  ActionName = "call"
	ActionBet   ActionName = "bet"
	ActionRaise ActionName = "raise"
	ActionFold  ActionName = "fold"
)

// Action is a resolved player action. Amount is meaningful for bet, raise and
// call; zero means "unspecified" and is corrected to a legal default by the
// PotManager rather than rejected.
type Action struct {
	Name   ActionName
	Amount int
}

// String renders an action for channel narration ("raises to $40")
func (a Action) String() string {
	switch a.Name {
	case ActionBet:
		if a.Amount > 0 {
			return fmt.Sprintf("bets $%d", a.Amount)
		}
		return "bets"
	case ActionRaise:
		if a.Amount > 0 {
			return fmt.Sprintf("raises to $%d", a.Amount)
		}
		return "raises"
	case ActionCall:
		return "calls"
	case ActionCheck:
		return "checks"
	case ActionFold:
		return "folds"
	default:
		return string(a.Name)
	}
}

// ParseAction parses chat text into an action. Abbreviations are accepted
// (c/check, f/fold, b/bet, r/raise, call) with an optional numeric wager.
// Chat input is noisy: anything unrecognizable reports ok=false and is
// ignored by the poller, and a malformed wager just leaves the amount
// unspecified.
func ParseAction(text string) (Action, bool) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	if len(fields) == 0 {
		return Action{}, false
	}

	var name ActionName
	switch fields[0] {
	case "c", "check":
		name = ActionCheck
	case "call":
		name = ActionCall
	case "f", "fold":
		name = ActionFold
	case "b", "bet":
		name = ActionBet
	case "r", "raise":
		name = ActionRaise
	default:
		return Action{}, false
	}

	amount := 0
	if len(fields) > 1 {
		if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
			amount = n
		}
	}

	return Action{Name: name, Amount: amount}, true
}
