package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdemchat/internal/chat"
	"github.com/lox/holdemchat/internal/deck"
)

// Config holds the table stakes and pacing for a game
type Config struct {
	SmallBlind     int
	BigBlind       int
	TimeoutSeconds int
	HandPause      time.Duration
}

// DefaultConfig returns the classic table: $1/$2 blinds, 30 second actions
func DefaultConfig() Config {
	return Config{
		SmallBlind:     1,
		BigBlind:       2,
		TimeoutSeconds: 30,
		HandPause:      5 * time.Second,
	}
}

// Game runs Texas Hold'em in a single chat channel: it deals hands, runs a
// betting round per street, resolves showdowns, and loops hands until one
// player holds every chip. One Game is one table in one channel — the chat
// integration layer owns the mapping from channel to game.
//
// Everything runs on the caller's goroutine: only one player is ever polled
// at a time, and every chip mutation goes through the PotManager in response
// to the single resolved action, so no locking is needed.
type Game struct {
	logger   *log.Logger
	channel  chat.Channel
	messages <-chan chat.Message
	clock    quartz.Clock
	rng      *rand.Rand
	cfg      Config

	players        []*Player
	playerChannels map[string]chat.PlayerChannel

	potManager *PotManager
	poller     *ActionPoller

	deck        *deck.Deck
	board       []deck.Card
	playerHands map[string][]deck.Card

	dealerButton int
	smallBlind   int
	bigBlind     int

	actingPlayer *Player
	roundActions []Action

	running  atomic.Bool
	quitOnce atomic.Bool
	quitc    chan struct{}
}

// NewGame creates a game for the given players in the given channel
func NewGame(logger *log.Logger, channel chat.Channel, messages <-chan chat.Message, players []*Player, cfg Config, clock quartz.Clock, rng *rand.Rand) *Game {
	return &Game{
		logger:     logger.WithPrefix("game"),
		channel:    channel,
		messages:   messages,
		clock:      clock,
		rng:        rng,
		cfg:        cfg,
		players:    players,
		potManager: NewPotManager(logger, channel, players, cfg.SmallBlind),
		poller:     NewActionPoller(logger, clock, channel, messages, cfg.TimeoutSeconds),
		quitc:      make(chan struct{}),
	}
}

// PotManager exposes the game's accounting engine
func (g *Game) PotManager() *PotManager {
	return g.potManager
}

// ActingPlayer returns the player currently being polled, if any
func (g *Game) ActingPlayer() *Player {
	return g.actingPlayer
}

// Board returns the community cards revealed so far
func (g *Game) Board() []deck.Card {
	return g.board
}

// DealerButton returns the current dealer position
func (g *Game) DealerButton() int {
	return g.dealerButton
}

// IsRunning reports whether the hand loop is still going
func (g *Game) IsRunning() bool {
	return g.running.Load()
}

// PlayersInHand returns the players still contesting the current hand
func (g *Game) PlayersInHand() []*Player {
	var in []*Player
	for _, p := range g.players {
		if p.InHand {
			in = append(in, p)
		}
	}
	return in
}

// Quit halts the game. Shutdown is cooperative: the hand loop observes it at
// loop boundaries, and an in-flight poll resolves naturally with its result
// discarded. No attempt is made to unwind or refund the abandoned hand.
func (g *Game) Quit() {
	if g.quitOnce.CompareAndSwap(false, true) {
		close(g.quitc)
	}
}

// Start runs hands until one player holds all the chips, the context is
// cancelled, or Quit is called. playerChannels maps human player ids to
// their direct-message channels for hole card delivery.
func (g *Game) Start(ctx context.Context, playerChannels map[string]chat.PlayerChannel, dealerButton int) error {
	if len(g.players) < 2 {
		return fmt.Errorf("need at least 2 players, have %d", len(g.players))
	}

	g.playerChannels = playerChannels
	g.dealerButton = dealerButton
	g.running.Store(true)
	defer g.running.Store(false)

	g.channel.Send(fmt.Sprintf("Dealing cards to %d players. Blinds are $%d/$%d.",
		len(g.players), g.cfg.SmallBlind, g.cfg.BigBlind))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.quitc:
			return nil
		default:
		}

		if winner := g.overallWinner(); winner != nil {
			g.channel.Send(fmt.Sprintf("Congratulations %s, you've won the game!", winner.Name))
			g.logger.Info("game over", "winner", winner.Name, "chips", winner.Chips)
			return nil
		}

		if err := g.playHand(ctx); err != nil {
			return err
		}

		if g.cfg.HandPause > 0 {
			timer := g.clock.NewTimer(g.cfg.HandPause, "hand-pause")
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-g.quitc:
				timer.Stop()
				return nil
			}
		}
	}
}

// overallWinner returns the last player with chips, or nil while the game
// is still contested.
func (g *Game) overallWinner() *Player {
	var winner *Player
	for _, p := range g.players {
		if p.Chips > 0 {
			if winner != nil {
				return nil
			}
			winner = p
		}
	}
	return winner
}

// playHand runs one complete hand: deal, one betting round per street, then
// a showdown unless a fold-out ended it early.
func (g *Game) playHand(ctx context.Context) error {
	g.board = nil
	g.playerHands = make(map[string][]deck.Card)
	g.actingPlayer = nil

	participants := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		p.InHand = p.Chips > 0
		p.InRound = p.InHand
		p.AllIn = false
		p.IsBettor = false
		p.HasOption = false
		p.LastAction = nil
		p.HoleCards = nil
		if p.InHand {
			participants = append(participants, p)
		}
	}

	g.potManager.CreatePot(participants, 0)
	g.smallBlind = NextPlayerIndex(g.dealerButton, g.players)
	g.bigBlind = NextPlayerIndex(g.smallBlind, g.players)

	g.deck = deck.New(g.rng)
	g.deck.Shuffle()
	if err := g.dealHoleCards(); err != nil {
		return err
	}

	for _, street := range []Street{Preflop, Flop, Turn, River} {
		if street != Preflop {
			if err := g.revealBoard(street); err != nil {
				return err
			}
		}

		handEnded, err := g.doBettingRound(ctx, street)
		if err != nil {
			return err
		}
		if handEnded {
			g.finishHand()
			return nil
		}

		select {
		case <-g.quitc:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	g.potManager.EndHandWithShowdown(g.playerHands, g.board)
	g.finishHand()
	return nil
}

func (g *Game) finishHand() {
	g.board = nil
	g.actingPlayer = nil
	g.dealerButton = (g.dealerButton + 1) % len(g.players)
}

// dealHoleCards gives each in-hand player two cards, starting left of the
// button. Humans are told privately; automated players just hold them.
func (g *Game) dealHoleCards() error {
	for _, player := range Determine(g.players, g.dealerButton, Flop) {
		if !player.InHand {
			continue
		}
		first, err := g.deck.Draw()
		if err != nil {
			return err
		}
		second, err := g.deck.Draw()
		if err != nil {
			return err
		}

		cards := []deck.Card{first, second}
		player.HoleCards = cards
		g.playerHands[player.ID] = cards

		if player.Automated == nil {
			if dm, ok := g.playerChannels[player.ID]; ok {
				dm.Send(fmt.Sprintf("Your cards: %s", formatCards(cards)))
			}
		}
	}
	return nil
}

// revealBoard burns a card and deals the street's community cards
func (g *Game) revealBoard(street Street) error {
	if _, err := g.deck.Draw(); err != nil { // burn
		return err
	}

	reveal := 1
	if street == Flop {
		reveal = 3
	}
	for i := 0; i < reveal; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			return err
		}
		g.board = append(g.board, card)
	}

	title := strings.ToUpper(street.String()[:1]) + street.String()[1:]
	g.channel.Send(fmt.Sprintf("%s: %s", title, formatCards(g.board)))
	g.logger.Debug("board revealed", "street", street, "board", formatCards(g.board))
	return nil
}

// doBettingRound polls each eligible player in order and routes their
// actions through the PotManager until the round closes. Returns true when
// the whole hand ended (a fold-out).
func (g *Game) doBettingRound(ctx context.Context, street Street) (bool, error) {
	// With fewer than two players able to act, no action could change any
	// pot: the chips are already committed.
	if g.countPlayersWhoCanAct() < 2 && street != Preflop {
		return false, nil
	}

	ordered := Determine(g.players, g.dealerButton, street)
	g.potManager.StartBettingRound()
	g.roundActions = nil
	for _, p := range g.players {
		p.IsBettor = false
		p.HasOption = false
		p.LastAction = nil
	}

	if street == Preflop {
		g.postBlinds()
	}

	idx := 0
	for {
		select {
		case <-g.quitc:
			return false, nil
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		player := ordered[idx]
		if !player.CanAct() {
			next, ok := g.nextToAct(ordered, idx)
			if !ok {
				break
			}
			idx = next
			player = ordered[idx]
		}

		g.actingPlayer = player
		g.channel.Send(FormatHandStatus(g.players, player, g.potManager, g.dealerButton, g.smallBlind, g.bigBlind))

		action := g.poller.GetActionForPlayer(ctx, player, g.potManager.CurrentBet(), g.roundActions)
		wasLastToAct := IsLastToAct(player, ordered)

		g.potManager.UpdatePotForAction(player, &action)
		player.LastAction = &action
		g.roundActions = append(g.roundActions, action)
		g.logger.Debug("action applied", "street", street, "player", player.Name, "action", action.Name, "amount", action.Amount)

		roundOver := false
		switch action.Name {
		case ActionFold:
			player.InHand = false
			player.HasOption = false
			if len(g.PlayersInHand()) == 1 {
				g.endHandByFold()
				return true, nil
			}
			roundOver = wasLastToAct

		case ActionCheck, ActionCall:
			player.HasOption = false
			roundOver = wasLastToAct

		case ActionBet, ActionRaise:
			for _, p := range g.players {
				p.IsBettor = false
				p.HasOption = false
			}
			player.IsBettor = true
			// With nobody left who can contest, further polling is
			// pointless: everyone else can only ever call all-in.
			if !g.anyOpponentWithChips(player) {
				roundOver = true
			}
		}

		if roundOver {
			break
		}

		next, ok := g.nextToAct(ordered, idx)
		if !ok {
			break
		}
		idx = next
	}

	g.actingPlayer = nil
	g.potManager.EndBettingRound()
	return false, nil
}

// postBlinds applies the blinds as implicit wagers. The big blind keeps the
// option to raise even when nobody else does.
func (g *Game) postBlinds() {
	sb := g.players[g.smallBlind]
	bb := g.players[g.bigBlind]

	sbAction := Action{Name: ActionBet, Amount: g.cfg.SmallBlind}
	g.potManager.UpdatePotForAction(sb, &sbAction)
	sb.LastAction = &sbAction

	bbAction := Action{Name: ActionRaise, Amount: g.cfg.BigBlind}
	g.potManager.UpdatePotForAction(bb, &bbAction)
	bb.LastAction = &bbAction

	sb.IsBettor = false
	bb.IsBettor = true
	bb.HasOption = true

	g.channel.Send(fmt.Sprintf("%s posts the small blind of $%d, %s posts the big blind of $%d.",
		sb.Name, sbAction.Amount, bb.Name, bbAction.Amount))
}

// endHandByFold awards everything to the last player standing without
// revealing any further cards.
func (g *Game) endHandByFold() {
	winner := g.PlayersInHand()[0]
	g.potManager.EndHand(&HandOutcome{Winners: []*Player{winner}})
	g.logger.Info("hand won by fold-out", "winner", winner.Name)
}

func (g *Game) nextToAct(ordered []*Player, idx int) (int, bool) {
	for i := 1; i <= len(ordered); i++ {
		next := (idx + i) % len(ordered)
		if ordered[next].CanAct() {
			return next, true
		}
	}
	return 0, false
}

func (g *Game) countPlayersWhoCanAct() int {
	count := 0
	for _, p := range g.players {
		if p.CanAct() && p.Chips > 0 {
			count++
		}
	}
	return count
}

func (g *Game) anyOpponentWithChips(player *Player) bool {
	for _, p := range g.players {
		if p != player && p.InHand && p.Chips > 0 {
			return true
		}
	}
	return false
}
