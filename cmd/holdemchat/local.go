package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdemchat/cmd/holdemchat/shared"
	"github.com/lox/holdemchat/internal/chat"
	"github.com/lox/holdemchat/internal/config"
	"github.com/lox/holdemchat/internal/game"
	"github.com/lox/holdemchat/internal/randutil"
)

// LocalCmd runs a table on the terminal: the channel is stdout, actions are
// typed on stdin, and the other seats are bots.
type LocalCmd struct {
	Debug  bool   `kong:"help='Enable debug logging'"`
	Config string `kong:"default='holdemchat.hcl',help='Path to the HCL config file'"`
	Name   string `kong:"default='you',help='Your seat name'"`
	Bots   int    `kong:"default='3',help='Number of bot seats when the config declares none'"`
	Seed   *int64 `kong:"help='Deterministic RNG seed (optional)'"`
}

func (c *LocalCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}

	seed := time.Now().UnixNano()
	if c.Seed != nil {
		seed = *c.Seed
	}
	rng := randutil.New(seed)
	logger.Debug("rng seeded", "seed", seed)

	bots := seatBots(cfg.Bots, c.Bots, cfg.Game.StartingChips)
	if len(bots) == 0 {
		return fmt.Errorf("a table needs at least one bot seat")
	}

	human := game.NewPlayer(c.Name, c.Name, cfg.Game.StartingChips)
	players := append([]*game.Player{human}, bots...)

	console := chat.NewConsoleChannel(os.Stdout)
	messages := chat.ReadConsoleMessages(os.Stdin, c.Name)
	playerChannels := map[string]chat.PlayerChannel{
		human.ID: &chat.ConsolePlayerChannel{Name: human.Name, Console: console},
	}

	g := game.NewGame(logger, console, messages, players, game.Config{
		SmallBlind:     cfg.Game.SmallBlind,
		BigBlind:       cfg.Game.BigBlind,
		TimeoutSeconds: cfg.Game.TimeoutSeconds,
		HandPause:      cfg.Game.HandPause(),
	}, quartz.NewReal(), rng)

	ctx := shared.SetupSignalHandler(logger)
	if err := g.Start(ctx, playerChannels, 0); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
