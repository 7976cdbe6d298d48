package bot

import "github.com/lox/holdemchat/internal/game"

// WeakBot checks whenever it's free and folds to any bet. It never wagers a
// chip voluntarily, which makes it a safe filler seat: its stack only ever
// bleeds through the blinds.
type WeakBot struct{}

// NewWeakBot creates a WeakBot
func NewWeakBot() *WeakBot {
	return &WeakBot{}
}

func (b *WeakBot) GetAction(available []game.ActionName, previous []game.Action) game.Action {
	for _, name := range available {
		if name == game.ActionCheck {
			return game.Action{Name: game.ActionCheck}
		}
	}
	return game.Action{Name: game.ActionFold}
}
