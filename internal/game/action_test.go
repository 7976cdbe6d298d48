package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		text   string
		action Action
		ok     bool
	}{
		{"check", Action{Name: ActionCheck}, true},
		{"c", Action{Name: ActionCheck}, true},
		{"CHECK", Action{Name: ActionCheck}, true},
		{"call", Action{Name: ActionCall}, true},
		{"fold", Action{Name: ActionFold}, true},
		{"f", Action{Name: ActionFold}, true},
		{"bet", Action{Name: ActionBet}, true},
		{"bet 50", Action{Name: ActionBet, Amount: 50}, true},
		{"b 10", Action{Name: ActionBet, Amount: 10}, true},
		{"raise 100", Action{Name: ActionRaise, Amount: 100}, true},
		{"r", Action{Name: ActionRaise}, true},
		{"  Raise   40  ", Action{Name: ActionRaise, Amount: 40}, true},

		// Malformed amounts leave the wager unspecified for correction later.
		{"bet lots", Action{Name: ActionBet}, true},
		{"raise -5", Action{Name: ActionRaise}, true},
		{"bet 0", Action{Name: ActionBet}, true},

		// Table chatter is not an action.
		{"", Action{}, false},
		{"nice hand", Action{}, false},
		{"ca", Action{}, false},
		{"50", Action{}, false},
	}

	for _, tt := range tests {
		action, ok := ParseAction(tt.text)
		assert.Equal(t, tt.ok, ok, "parse %q", tt.text)
		if tt.ok {
			assert.Equal(t, tt.action, action, "parse %q", tt.text)
		}
	}
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "bets $10", Action{Name: ActionBet, Amount: 10}.String())
	assert.Equal(t, "raises to $40", Action{Name: ActionRaise, Amount: 40}.String())
	assert.Equal(t, "raises", Action{Name: ActionRaise}.String())
	assert.Equal(t, "calls", Action{Name: ActionCall}.String())
	assert.Equal(t, "checks", Action{Name: ActionCheck}.String())
	assert.Equal(t, "folds", Action{Name: ActionFold}.String())
}

func TestStreetString(t *testing.T) {
	assert.Equal(t, "preflop", Preflop.String())
	assert.Equal(t, "flop", Flop.String())
	assert.Equal(t, "turn", Turn.String())
	assert.Equal(t, "river", River.String())
}
