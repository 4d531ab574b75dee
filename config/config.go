package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"
)

const (
	DefaultAddress    = "localhost"
	DefaultPort       = 3001
	DefaultLogLevel   = "info"
	DefaultMaxPlayers = 9
	DefaultMinBuyIn   = 50
	DefaultMaxBuyIn   = 500
	DefaultSmallBlind = 10
	DefaultBigBlind   = 20
)

// Config is the server configuration file
type Config struct {
	Server  ServerSettings `hcl:"server,block"`
	Tables  []TableConfig  `hcl:"table,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// TableConfig is a table created at startup
type TableConfig struct {
	Name       string `hcl:"name,label"`
	MaxPlayers int    `hcl:"max_players,optional"`
	MinBuyIn   int    `hcl:"min_buy_in,optional"`
	MaxBuyIn   int    `hcl:"max_buy_in,optional"`
	SmallBlind int    `hcl:"small_blind,optional"`
	BigBlind   int    `hcl:"big_blind,optional"`
	Ante       int    `hcl:"ante,optional"`
	GameType   string `hcl:"game_type,optional"`
}

// PlayerConfig is a player registered at startup
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Bankroll int    `hcl:"bankroll"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  DefaultAddress,
			Port:     DefaultPort,
			LogLevel: DefaultLogLevel,
		},
	}
}

// Load parses an HCL file, a missing file yields the defaults
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and applies defaults
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = DefaultLogLevel
	}
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.MaxPlayers == 0 {
			t.MaxPlayers = DefaultMaxPlayers
		}
		if t.MinBuyIn == 0 {
			t.MinBuyIn = DefaultMinBuyIn
		}
		if t.MaxBuyIn == 0 {
			t.MaxBuyIn = DefaultMaxBuyIn
		}
		if t.SmallBlind == 0 && t.BigBlind == 0 {
			t.SmallBlind = DefaultSmallBlind
			t.BigBlind = DefaultBigBlind
		}
	}
}

// Validate checks ranges and uniqueness
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	names := make(map[string]bool)
	for _, t := range c.Tables {
		if names[t.Name] {
			return fmt.Errorf("duplicate table name: %s", t.Name)
		}
		names[t.Name] = true
		if t.MaxPlayers < 2 || t.MaxPlayers > 10 {
			return fmt.Errorf("table %s: max_players must be between 2 and 10", t.Name)
		}
		if t.MinBuyIn <= 0 || t.MinBuyIn > t.MaxBuyIn {
			return fmt.Errorf("table %s: min_buy_in must be positive and not exceed max_buy_in", t.Name)
		}
		if t.SmallBlind < 0 || t.BigBlind < 0 || t.Ante < 0 {
			return fmt.Errorf("table %s: blinds must not be negative", t.Name)
		}
		if t.BigBlind < t.SmallBlind {
			return fmt.Errorf("table %s: big_blind must not be less than small_blind", t.Name)
		}
	}
	players := make(map[string]bool)
	for _, p := range c.Players {
		if players[p.Name] {
			return fmt.Errorf("duplicate player name: %s", p.Name)
		}
		players[p.Name] = true
		if p.Bankroll < 0 {
			return fmt.Errorf("player %s: bankroll must not be negative", p.Name)
		}
	}
	return nil
}

// ListenAddress host:port to bind
func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.Server.Address, strconv.Itoa(c.Server.Port))
}

// LoadEnv loads .env style files into the environment, missing files are ignored
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}
