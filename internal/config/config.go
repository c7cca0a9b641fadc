package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that overrides DefaultPath.
const (
	EnvPath     = "DUNGEONS_CONFIG"
	DefaultPath = "config/server.toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Network   NetworkConfig   `toml:"network"`
	World     WorldConfig     `toml:"world"`
	Logging   LoggingConfig   `toml:"logging"`
	Database  DatabaseConfig  `toml:"database"`
	Scripting ScriptingConfig `toml:"scripting"`
	Spectator SpectatorConfig `toml:"spectator"`
}

type ServerConfig struct {
	Name      string `toml:"name"`
	StartTime int64  // set at boot, not from config
}

type NetworkConfig struct {
	BindAddress   string        `toml:"bind_address"`
	WriteTimeout  time.Duration `toml:"write_timeout"`
	InQueueSize   int           `toml:"in_queue_size"`
	MaxLineLength int           `toml:"max_line_length"`
}

type WorldConfig struct {
	MapFile      string `toml:"map_file"` // empty = built-in dungeon
	MaxMonsters  int    `toml:"max_monsters"`
	MaxTreasures int    `toml:"max_treasures"`
	Seed         int64  `toml:"seed"` // 0 = time-based
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty = console only
}

// DatabaseConfig configures the event journal. An empty DSN disables it.
type DatabaseConfig struct {
	DSN             string        `toml:"dsn"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type ScriptingConfig struct {
	Dir string `toml:"dir"` // empty = built-in formulas
}

type SpectatorConfig struct {
	BindAddress string `toml:"bind_address"` // empty = disabled
	SendBuffer  int    `toml:"send_buffer"`
}

// Path returns the config file location: $DUNGEONS_CONFIG or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not
// exist at DefaultPath. A missing file named explicitly is an error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && path == DefaultPath && errors.Is(err, fs.ErrNotExist) {
		cfg = defaults()
		cfg.Server.StartTime = time.Now().Unix()
		return cfg, nil
	}
	return cfg, err
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Network.BindAddress == "" {
		return errors.New("network.bind_address is empty")
	}
	if c.World.MaxMonsters <= 0 {
		return fmt.Errorf("world.max_monsters must be positive, got %d", c.World.MaxMonsters)
	}
	if c.World.MaxTreasures <= 0 {
		return fmt.Errorf("world.max_treasures must be positive, got %d", c.World.MaxTreasures)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q: want console or json", c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "DungeonsOnline",
		},
		Network: NetworkConfig{
			BindAddress:   "localhost:7777",
			WriteTimeout:  5 * time.Second,
			InQueueSize:   256,
			MaxLineLength: 1024,
		},
		World: WorldConfig{
			MaxMonsters:  5,
			MaxTreasures: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "ServerLog",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Spectator: SpectatorConfig{
			SendBuffer: 16,
		},
	}
}
