package game

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdemchat/internal/chat"
	"github.com/lox/holdemchat/internal/randutil"
)

var seatNames = []string{"alice", "bob", "carol", "dave", "erin"}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// fakeChannel records everything the game says so tests can both assert on
// it and use specific messages as synchronization points.
type fakeChannel struct {
	mu      sync.Mutex
	sent    []string
	updates []string
}

func (c *fakeChannel) Send(text string) chat.EditableMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, text)
	return &fakeMessage{channel: c}
}

// waitFor blocks until a message containing substr has been sent at or after
// index from, returning the index just past the match.
func (c *fakeChannel) waitFor(t *testing.T, substr string, from int) int {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		for i := from; i < len(c.sent); i++ {
			if strings.Contains(c.sent[i], substr) {
				c.mu.Unlock()
				return i + 1
			}
		}
		c.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("no message containing %q seen", substr)
	return 0
}

func (c *fakeChannel) contains(substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.sent {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func (c *fakeChannel) updatesContain(substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.updates {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

type fakeMessage struct {
	channel *fakeChannel
}

func (m *fakeMessage) Update(text string) {
	m.channel.mu.Lock()
	defer m.channel.mu.Unlock()
	m.channel.updates = append(m.channel.updates, text)
}

type fakeDM struct {
	mu   sync.Mutex
	sent []string
}

func (d *fakeDM) Send(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, text)
}

func (d *fakeDM) messages() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.sent))
	copy(out, d.sent)
	return out
}

// testPlayers seats one player per stack, named in seat order
func testPlayers(stacks ...int) []*Player {
	players := make([]*Player, len(stacks))
	for i, chips := range stacks {
		players[i] = NewPlayer(fmt.Sprintf("u%d", i+1), seatNames[i], chips)
		players[i].InHand = true
		players[i].InRound = true
	}
	return players
}

// gameHarness runs a Game on its own goroutine and lets a test script it
// message by message. The inbound channel is unbuffered and the mock clock
// is never advanced unless a test says so, which makes every step
// deterministic: once awaitTurn returns, the game goroutine is blocked
// polling that player and its state is safe to read.
type gameHarness struct {
	t        *testing.T
	game     *Game
	players  []*Player
	channel  *fakeChannel
	clock    *quartz.Mock
	msgs     chan chat.Message
	dms      []*fakeDM
	cancel   context.CancelFunc
	done     chan error
	cursor   int
	total    int
	finished bool
}

func startGame(t *testing.T, stacks []int, button int, cfg Config) *gameHarness {
	t.Helper()

	channel := &fakeChannel{}
	msgs := make(chan chat.Message)
	players := testPlayers(stacks...)
	clock := quartz.NewMock(t)
	game := NewGame(discardLogger(), channel, msgs, players, cfg, clock, randutil.New(1))

	total := 0
	for _, s := range stacks {
		total += s
	}

	dms := make([]*fakeDM, len(players))
	channels := make(map[string]chat.PlayerChannel, len(players))
	for i, p := range players {
		dms[i] = &fakeDM{}
		channels[p.ID] = dms[i]
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- game.Start(ctx, channels, button)
	}()

	h := &gameHarness{
		t:       t,
		game:    game,
		players: players,
		channel: channel,
		clock:   clock,
		msgs:    msgs,
		dms:     dms,
		cancel:  cancel,
		done:    done,
		total:   total,
	}
	t.Cleanup(h.stop)
	return h
}

func scriptedConfig() Config {
	return Config{SmallBlind: 1, BigBlind: 2, TimeoutSeconds: 30, HandPause: 0}
}

// awaitTurn blocks until the named player is being polled. On return the
// game goroutine is parked in its select, so pot and chip state is stable.
func (h *gameHarness) awaitTurn(name string) {
	h.t.Helper()
	h.cursor = h.channel.waitFor(h.t, name+", it's your turn to act.", h.cursor)
	require.Equal(h.t, name, h.game.ActingPlayer().Name)
}

// say injects a chat message from the given seat
func (h *gameHarness) say(seat int, text string) {
	h.t.Helper()
	select {
	case h.msgs <- chat.Message{SenderID: h.players[seat].ID, Text: text}:
	case <-time.After(5 * time.Second):
		h.t.Fatalf("game never consumed message %q from seat %d", text, seat)
	}
}

// act waits for the seat's turn and then answers it
func (h *gameHarness) act(seat int, text string) {
	h.t.Helper()
	h.awaitTurn(h.players[seat].Name)
	h.say(seat, text)
}

func (h *gameHarness) awaitMessage(substr string) {
	h.t.Helper()
	h.cursor = h.channel.waitFor(h.t, substr, h.cursor)
}

// assertConserved checks that no chips have appeared or vanished. Only valid
// at a sync point where the game goroutine is blocked.
func (h *gameHarness) assertConserved() {
	h.t.Helper()
	total := h.game.PotManager().TotalChips()
	for _, p := range h.players {
		total += p.Chips
	}
	require.Equal(h.t, h.total, total, "chips not conserved")
}

func (h *gameHarness) stop() {
	h.cancel()
	if h.finished {
		return
	}
	select {
	case <-h.done:
	case <-time.After(5 * time.Second):
		h.t.Error("game did not stop after cancel")
	}
}

func (h *gameHarness) waitDone() error {
	h.t.Helper()
	select {
	case err := <-h.done:
		h.finished = true
		return err
	case <-time.After(5 * time.Second):
		h.t.Fatal("game did not finish")
		return nil
	}
}
