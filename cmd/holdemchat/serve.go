package main

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdemchat/cmd/holdemchat/shared"
	"github.com/lox/holdemchat/internal/chat"
	"github.com/lox/holdemchat/internal/config"
	"github.com/lox/holdemchat/internal/game"
	"github.com/lox/holdemchat/internal/randutil"
)

// ServeCmd hosts a table behind the WebSocket gateway. Clients connect with
// ws://host/ws?name=<seat> and play by sending chat frames; the hand starts
// once enough players are seated.
type ServeCmd struct {
	Debug  bool   `kong:"help='Enable debug logging'"`
	Config string `kong:"default='holdemchat.hcl',help='Path to the HCL config file'"`
	Addr   string `kong:"help='Listen address (overrides the config file)'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *ServeCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	addr := c.Addr
	if addr == "" {
		addr = fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)
	logger.Debug("rng seeded", "seed", seed)

	gateway := chat.NewGateway(addr, logger)

	ctx, cancel := context.WithCancel(shared.SetupSignalHandler(logger))
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return gateway.Run(ctx)
	})
	eg.Go(func() error {
		// Once the game ends the gateway has nothing left to serve.
		defer cancel()
		return hostTable(ctx, logger, cfg, gateway, rng)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// hostTable waits for the table to fill, seats the connected clients plus
// any configured bots, and runs the game over the gateway.
func hostTable(ctx context.Context, logger *log.Logger, cfg *config.Config, gateway *chat.Gateway, rng *rand.Rand) error {
	logger.Info("waiting for players", "needed", cfg.Server.MinPlayers)
	if err := gateway.WaitForPlayers(ctx, cfg.Server.MinPlayers); err != nil {
		return err
	}

	playerChannels := make(map[string]chat.PlayerChannel)
	var players []*game.Player
	for _, name := range gateway.PlayerNames() {
		players = append(players, game.NewPlayer(name, name, cfg.Game.StartingChips))
		playerChannels[name] = gateway.PlayerChannel(name)
	}
	players = append(players, seatBots(cfg.Bots, 0, cfg.Game.StartingChips)...)

	logger.Info("table filled", "players", len(players))
	g := game.NewGame(logger, gateway, gateway.Messages(), players, game.Config{
		SmallBlind:     cfg.Game.SmallBlind,
		BigBlind:       cfg.Game.BigBlind,
		TimeoutSeconds: cfg.Game.TimeoutSeconds,
		HandPause:      cfg.Game.HandPause(),
	}, quartz.NewReal(), rng)

	go func() {
		<-ctx.Done()
		g.Quit()
	}()

	return g.Start(ctx, playerChannels, 0)
}
