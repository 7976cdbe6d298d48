// Package config loads the table and server configuration from an HCL file.
// Every field is optional: a missing file or empty block yields the same
// defaults the CLI flags document.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete configuration. The game and server blocks are
// pointers so that leaving them out of the file entirely is legal.
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	Server *ServerSettings `hcl:"server,block"`
	Bots   []BotSeat       `hcl:"bot,block"`
}

// GameSettings configures the table stakes and pacing
type GameSettings struct {
	SmallBlind       int `hcl:"small_blind,optional"`
	BigBlind         int `hcl:"big_blind,optional"`
	StartingChips    int `hcl:"starting_chips,optional"`
	TimeoutSeconds   int `hcl:"timeout_seconds,optional"`
	HandPauseSeconds int `hcl:"hand_pause_seconds,optional"`
}

// ServerSettings configures the WebSocket chat gateway
type ServerSettings struct {
	Address    string `hcl:"address,optional"`
	Port       int    `hcl:"port,optional"`
	MinPlayers int    `hcl:"min_players,optional"`
}

// BotSeat seats an automated player at the table
type BotSeat struct {
	Name  string `hcl:"name,label"`
	Style string `hcl:"style,optional"`
	Chips int    `hcl:"chips,optional"`
}

// HandPause converts the configured pause to a duration
func (g GameSettings) HandPause() time.Duration {
	return time.Duration(g.HandPauseSeconds) * time.Second
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			SmallBlind:       1,
			BigBlind:         2,
			StartingChips:    200,
			TimeoutSeconds:   30,
			HandPauseSeconds: 5,
		},
		Server: &ServerSettings{
			Address:    "localhost",
			Port:       8080,
			MinPlayers: 2,
		},
	}
}

// Load reads an HCL configuration file. A missing file is not an error: the
// defaults apply.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config: %s", diags.Error())
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Server == nil {
		c.Server = &ServerSettings{}
	}
	if c.Game.SmallBlind == 0 {
		c.Game.SmallBlind = defaults.Game.SmallBlind
	}
	if c.Game.BigBlind == 0 {
		c.Game.BigBlind = defaults.Game.BigBlind
	}
	if c.Game.StartingChips == 0 {
		c.Game.StartingChips = defaults.Game.StartingChips
	}
	if c.Game.TimeoutSeconds == 0 {
		c.Game.TimeoutSeconds = defaults.Game.TimeoutSeconds
	}
	if c.Game.HandPauseSeconds == 0 {
		c.Game.HandPauseSeconds = defaults.Game.HandPauseSeconds
	}
	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.Port == 0 {
		c.Server.Port = defaults.Server.Port
	}
	if c.Server.MinPlayers == 0 {
		c.Server.MinPlayers = defaults.Server.MinPlayers
	}
	for i := range c.Bots {
		if c.Bots[i].Style == "" {
			c.Bots[i].Style = "weak"
		}
		if c.Bots[i].Chips == 0 {
			c.Bots[i].Chips = c.Game.StartingChips
		}
	}
}

// Validate rejects configurations the game cannot run with
func (c *Config) Validate() error {
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small_blind must be positive, got %d", c.Game.SmallBlind)
	}
	if c.Game.BigBlind < c.Game.SmallBlind {
		return fmt.Errorf("big_blind %d is below the small blind %d", c.Game.BigBlind, c.Game.SmallBlind)
	}
	if c.Game.StartingChips < c.Game.BigBlind {
		return fmt.Errorf("starting_chips %d cannot cover the big blind %d", c.Game.StartingChips, c.Game.BigBlind)
	}
	if c.Server.MinPlayers < 2 {
		return fmt.Errorf("min_players must be at least 2, got %d", c.Server.MinPlayers)
	}
	for _, b := range c.Bots {
		switch b.Style {
		case "weak", "aggro":
		default:
			return fmt.Errorf("bot %q has unknown style %q", b.Name, b.Style)
		}
	}
	return nil
}
