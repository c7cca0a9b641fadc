package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[network]
bind_address = "0.0.0.0:9000"
write_timeout = "250ms"

[world]
max_monsters = 8
seed = 42

[database]
dsn = "postgres://dungeons@localhost/dungeons"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Network.BindAddress != "0.0.0.0:9000" {
		t.Fatalf("bind = %q", cfg.Network.BindAddress)
	}
	if cfg.Network.WriteTimeout != 250*time.Millisecond {
		t.Fatalf("write timeout = %v", cfg.Network.WriteTimeout)
	}
	if cfg.World.MaxMonsters != 8 || cfg.World.Seed != 42 {
		t.Fatalf("world = %+v", cfg.World)
	}
	if cfg.World.MaxTreasures != 5 {
		t.Fatalf("unset max_treasures = %d, want default 5", cfg.World.MaxTreasures)
	}
	if cfg.Logging.File != "ServerLog" {
		t.Fatalf("log file = %q, want default", cfg.Logging.File)
	}
	if cfg.Server.StartTime == 0 {
		t.Fatalf("start time not set")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"zero monsters":  "[world]\nmax_monsters = 0\n",
		"empty bind":     "[network]\nbind_address = \"\"\n",
		"bad log format": "[logging]\nformat = \"xml\"\n",
		"bad toml":       "[world\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadOrDefault(DefaultPath)
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Network.BindAddress != "localhost:7777" {
		t.Fatalf("bind = %q, want default", cfg.Network.BindAddress)
	}

	_, err = LoadOrDefault(filepath.Join(dir, "missing.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("explicit missing file err = %v, want not exist", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	if Path() != DefaultPath {
		t.Fatalf("Path = %q, want %q", Path(), DefaultPath)
	}
	t.Setenv(EnvPath, "/etc/dungeons.toml")
	if !strings.HasSuffix(Path(), "dungeons.toml") {
		t.Fatalf("Path = %q", Path())
	}
}
