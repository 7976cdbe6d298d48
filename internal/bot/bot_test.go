package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemchat/internal/game"
)

func TestWeakBot(t *testing.T) {
	b := NewWeakBot()

	action := b.GetAction([]game.ActionName{game.ActionCheck, game.ActionBet, game.ActionFold}, nil)
	assert.Equal(t, game.ActionCheck, action.Name)

	action = b.GetAction([]game.ActionName{game.ActionCall, game.ActionRaise, game.ActionFold}, nil)
	assert.Equal(t, game.ActionFold, action.Name, "never calls a bet")
}

func TestAggroBot(t *testing.T) {
	b := NewAggroBot()

	action := b.GetAction([]game.ActionName{game.ActionCheck, game.ActionBet, game.ActionFold}, nil)
	assert.Equal(t, game.ActionBet, action.Name)
	assert.Zero(t, action.Amount, "amount left to the table default")

	action = b.GetAction([]game.ActionName{game.ActionCall, game.ActionRaise, game.ActionFold}, nil)
	assert.Equal(t, game.ActionRaise, action.Name)

	// With raising off the table it still won't fold.
	action = b.GetAction([]game.ActionName{game.ActionCall, game.ActionFold}, nil)
	assert.Equal(t, game.ActionCall, action.Name)
}

func TestSeatMany(t *testing.T) {
	players := SeatMany(4, 200)
	require.Len(t, players, 4)

	ids := map[string]bool{}
	for i, p := range players {
		assert.Equal(t, 200, p.Chips)
		require.NotNil(t, p.Automated)
		require.NotEmpty(t, p.ID)
		assert.False(t, ids[p.ID], "ids are unique")
		ids[p.ID] = true
		if i%2 == 0 {
			assert.IsType(t, &WeakBot{}, p.Automated)
		} else {
			assert.IsType(t, &AggroBot{}, p.Automated)
		}
	}
}
