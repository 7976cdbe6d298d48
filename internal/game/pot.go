package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemchat/internal/chat"
	"github.com/lox/holdemchat/internal/deck"
)

// Pot is a single pot: the players still eligible to win it, the chips in
// it, and — once the hand ends — its outcome.
type Pot struct {
	Participants []*Player
	Amount       int
	Result       *HandOutcome
}

// HandOutcome describes who won a pot and with what
type HandOutcome struct {
	Winners    []*Player
	HandName   string
	BestHand   []deck.Card
	IsSplitPot bool
}

// PotManager owns every chip movement in a game: it applies wagers, carves
// side pots when players go all-in at different depths, and distributes pots
// when a hand ends. It is the single writer of player chip stacks, which is
// what keeps the chip-conservation invariant checkable: the sum of all
// stacks and all pots never changes except inside one action application.
type PotManager struct {
	logger     *log.Logger
	channel    chat.Channel
	players    []*Player
	minimumBet int

	pots       []*Pot
	currentPot *Pot
	currentBet int

	// Players who went all-in during the current betting round, in arrival
	// order. Sorted by wager size when side pots are carved.
	allInPlayers []*Player

	outcomes [][]*HandOutcome
}

// NewPotManager creates a pot manager for a game. minimumBet is the smallest
// legal bet (one small blind), used to default bets given with no amount.
func NewPotManager(logger *log.Logger, channel chat.Channel, players []*Player, minimumBet int) *PotManager {
	return &PotManager{
		logger:     logger.WithPrefix("pot"),
		channel:    channel,
		players:    players,
		minimumBet: minimumBet,
	}
}

// CreatePot opens a new pot as the current destination for wagers. Called at
// hand start with every in-hand player, and again whenever a side pot is
// carved out.
func (pm *PotManager) CreatePot(participants []*Player, amount int) {
	// Trim an empty current pot; this happens when several all-in players
	// carve side pots in the same round.
	if pm.currentPot != nil && pm.currentPot.Amount == 0 {
		for i, pot := range pm.pots {
			if pot == pm.currentPot {
				pm.pots = append(pm.pots[:i], pm.pots[i+1:]...)
				break
			}
		}
	}

	pm.currentPot = &Pot{Participants: participants, Amount: amount}
	pm.pots = append(pm.pots, pm.currentPot)
}

// StartBettingRound resets per-round wager state
func (pm *PotManager) StartBettingRound() {
	pm.currentBet = 0
	pm.allInPlayers = nil
}

// CurrentBet returns the outstanding bet in this round
func (pm *PotManager) CurrentBet() int {
	return pm.currentBet
}

// Pots returns the pot list, main pot first
func (pm *PotManager) Pots() []*Pot {
	return pm.pots
}

// TotalChips returns the chips across all pots
func (pm *PotManager) TotalChips() int {
	total := 0
	for _, pot := range pm.pots {
		total += pot.Amount
	}
	return total
}

// Outcomes returns the per-hand outcome history (one entry per ended hand,
// one outcome per non-empty pot).
func (pm *PotManager) Outcomes() [][]*HandOutcome {
	return pm.outcomes
}

// LastOutcome returns the most recent hand's outcomes, or nil
func (pm *PotManager) LastOutcome() []*HandOutcome {
	if len(pm.outcomes) == 0 {
		return nil
	}
	return pm.outcomes[len(pm.outcomes)-1]
}

// UpdatePotForAction routes a resolved action into chip and pot state.
// The action's amount may be rewritten: calls are stamped with the current
// bet, and irregular bets are corrected to a legal default rather than
// rejected — chat input is noisy and the game must keep moving.
func (pm *PotManager) UpdatePotForAction(player *Player, action *Action) {
	switch action.Name {
	case ActionFold:
		pm.removePlayerFromAllPots(player)
	case ActionCall:
		// Calls don't specify an amount, but they are a wager nonetheless.
		action.Amount = pm.currentBet
		pm.updateChipsAndPot(player, action)
	case ActionBet, ActionRaise:
		pm.correctInvalidBets(player, action)
		pm.currentBet = pm.updateChipsAndPot(player, action)
	case ActionCheck:
		// No chips move.
	}
}

// EndBettingRound carves side pots for everyone who went all-in this round.
// Shortest stacks first: the smallest side pot peels off first, so each
// all-in player only stays eligible for chips wagered up to their own level.
func (pm *PotManager) EndBettingRound() {
	sort.SliceStable(pm.allInPlayers, func(i, j int) bool {
		return pm.allInPlayers[i].LastAction.Amount < pm.allInPlayers[j].LastAction.Amount
	})

	mainPot := pm.currentPot
	amountSetAside := 0
	for _, player := range pm.allInPlayers {
		amountSetAside += pm.createSidePot(player)
	}
	if mainPot != nil {
		mainPot.Amount -= amountSetAside
	}
}

func (pm *PotManager) createSidePot(player *Player) int {
	currentWager := player.LastAction.Amount
	nextHighestWager := pm.nextHighestWager(currentWager)

	// The all-in player is excluded from the new pot; chips above their
	// level belong to the callers who could cover it.
	participants := make([]*Player, 0, len(pm.currentPot.Participants))
	for _, p := range pm.currentPot.Participants {
		if p != player {
			participants = append(participants, p)
		}
	}

	sidePotAmount := 0
	if delta := nextHighestWager - currentWager; delta > 0 {
		sidePotAmount = delta * len(participants)
	}

	pm.CreatePot(participants, sidePotAmount)
	return sidePotAmount
}

// nextHighestWager returns the next distinct wager level above the given
// one, drawn from the other all-in wagers and the current bet.
func (pm *PotManager) nextHighestWager(currentWager int) int {
	levels := make([]int, 0, len(pm.allInPlayers)+1)
	for _, p := range pm.allInPlayers {
		levels = append(levels, p.LastAction.Amount)
	}
	levels = append(levels, pm.currentBet)
	sort.Ints(levels)

	uniq := levels[:0]
	for i, w := range levels {
		if i == 0 || w != uniq[len(uniq)-1] {
			uniq = append(uniq, w)
		}
	}

	for i, w := range uniq {
		if w == currentWager && i+1 < len(uniq) {
			return uniq[i+1]
		}
	}
	return uniq[len(uniq)-1]
}

// updateChipsAndPot applies a wager, returning the amount actually wagered
// after clamping to the player's stack. A wager is cumulative within the
// round: only the increase over the player's previous wager moves.
func (pm *PotManager) updateChipsAndPot(player *Player, action *Action) int {
	previousWager := 0
	if player.LastAction != nil {
		previousWager = player.LastAction.Amount
	}

	availableChips := player.Chips + previousWager
	if action.Amount >= availableChips {
		action.Amount = availableChips
	}

	wagerIncrease := action.Amount - previousWager
	player.Chips -= wagerIncrease
	pm.currentPot.Amount += wagerIncrease

	if player.Chips == 0 {
		player.AllIn = true
		player.InRound = false
		pm.allInPlayers = append(pm.allInPlayers, player)
		pm.logger.Debug("player all in", "player", player.Name, "wager", action.Amount)
	}

	return action.Amount
}

// correctInvalidBets repairs irregular bets and raises in place
func (pm *PotManager) correctInvalidBets(player *Player, action *Action) {
	// No amount given: raise to 2x the outstanding bet, or open for the
	// minimum when nothing has been bet yet.
	if action.Amount <= 0 {
		if pm.currentBet > 0 {
			action.Amount = pm.currentBet * 2
		} else {
			action.Amount = pm.minimumBet
		}
	}

	// A short raise is brought up to 2x the outstanding bet.
	if action.Name == ActionRaise && action.Amount < pm.currentBet*2 {
		action.Amount = pm.currentBet * 2
	}

	// With no opponent left who can call, raising is meaningless; demote it
	// to a call.
	if action.Amount > pm.currentBet {
		playersWhoCanCall := 0
		for _, p := range pm.players {
			if p.InHand && p != player && p.Chips > 0 {
				playersWhoCanCall++
			}
		}
		if playersWhoCanCall == 0 {
			action.Amount = pm.currentBet
		}
	}
}

// EndHand ends a hand without a showdown, awarding every non-empty pot to
// the given result's winner.
func (pm *PotManager) EndHand(result *HandOutcome) {
	outcome := make([]*HandOutcome, 0, len(pm.pots))
	for _, pot := range pm.pots {
		if pot.Amount == 0 {
			continue
		}
		pot.Result = result
		pm.distributePot(pot)
		outcome = append(outcome, pot.Result)
	}
	pm.outcomes = append(pm.outcomes, outcome)
	pm.pots = nil
	pm.currentPot = nil
}

// EndHandWithShowdown evaluates hole cards against the board for each pot
// separately, since each pot has its own eligible players.
func (pm *PotManager) EndHandWithShowdown(playerHands map[string][]deck.Card, board []deck.Card) {
	outcome := make([]*HandOutcome, 0, len(pm.pots))
	for _, pot := range pm.pots {
		if pot.Amount == 0 {
			continue
		}
		pot.Result = EvaluateHands(pot.Participants, playerHands, board)
		pm.distributePot(pot)
		outcome = append(outcome, pot.Result)
	}
	pm.outcomes = append(pm.outcomes, outcome)
	pm.pots = nil
	pm.currentPot = nil
}

// distributePot pays a pot's winners and narrates the result. On a split
// pot every winner but the last receives the rounded-down share and the last
// receives the balance, so the pot is always paid out in full.
func (pm *PotManager) distributePot(pot *Pot) {
	result := pot.Result

	if result.IsSplitPot {
		share := pot.Amount / len(result.Winners)
		paid := 0
		names := make([]string, len(result.Winners))
		for i, winner := range result.Winners {
			names[i] = winner.Name
			if i < len(result.Winners)-1 {
				winner.Chips += share
				paid += share
			} else {
				winner.Chips += pot.Amount - paid
			}
		}

		message := fmt.Sprintf("%s and %s split the pot of $%d",
			strings.Join(names[:len(names)-1], ", "), names[len(names)-1], pot.Amount)
		if result.HandName != "" {
			message += fmt.Sprintf(" with %s: %s", result.HandName, formatCards(result.BestHand))
		}
		pm.channel.Send(message + ".")
		pm.logger.Info("split pot", "winners", strings.Join(names, ","), "amount", pot.Amount, "hand", result.HandName)
		return
	}

	winner := result.Winners[0]
	winner.Chips += pot.Amount

	message := fmt.Sprintf("%s wins $%d", winner.Name, pot.Amount)
	if result.HandName != "" {
		message += fmt.Sprintf(" with %s: %s", result.HandName, formatCards(result.BestHand))
	}
	pm.channel.Send(message + ".")
	pm.logger.Info("pot won", "winner", winner.Name, "amount", pot.Amount, "hand", result.HandName)
}

func (pm *PotManager) removePlayerFromAllPots(player *Player) {
	for _, pot := range pm.pots {
		for i, p := range pot.Participants {
			if p == player {
				pot.Participants = append(pot.Participants[:i], pot.Participants[i+1:]...)
				break
			}
		}
	}
}

func formatCards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
