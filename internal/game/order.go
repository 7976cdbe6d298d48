package game

// Determine builds the acting order for a betting round from the dealer
// button position. The source slice is never mutated. Preflop the small and
// big blinds are skipped and action starts three seats past the button;
// every other street starts at the small blind.
func Determine(players []*Player, button int, street Street) []*Player {
	offset := 1
	if street == Preflop {
		offset = 3
	}

	firstToAct := (button + offset) % len(players)
	ordered := make([]*Player, 0, len(players))
	for i := 0; i < len(players); i++ {
		ordered = append(ordered, players[(firstToAct+i)%len(players)])
	}
	return ordered
}

// IsLastToAct reports whether the acting player closes the betting round.
// Only players still in the hand and the round count. A player holding the
// option (the unraised big blind preflop) is always the true last to act;
// otherwise it is the player immediately before the bettor, or the final
// player in order when nothing has been bet.
func IsLastToAct(acting *Player, ordered []*Player) bool {
	remaining := make([]*Player, 0, len(ordered))
	for _, p := range ordered {
		if p.InHand && p.InRound {
			remaining = append(remaining, p)
		}
	}

	currentIndex := indexOf(remaining, acting)
	if currentIndex < 0 {
		return false
	}

	for _, p := range remaining {
		if p.HasOption {
			return p == acting
		}
	}

	bettorIndex := -1
	for i, p := range remaining {
		if p.IsBettor {
			bettorIndex = i
			break
		}
	}
	if bettorIndex < 0 {
		return currentIndex == len(remaining)-1
	}
	return (currentIndex+1)%len(remaining) == bettorIndex
}

// NextPlayerIndex scans forward from idx (wrapping) for the next player
// still in the hand and the round.
func NextPlayerIndex(idx int, players []*Player) int {
	for i := 1; i <= len(players); i++ {
		next := (idx + i) % len(players)
		if players[next].InHand && players[next].InRound {
			return next
		}
	}
	return -1
}

func indexOf(players []*Player, target *Player) int {
	for i, p := range players {
		if p == target {
			return i
		}
	}
	return -1
}
