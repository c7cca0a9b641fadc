package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dungeons/server/internal/world"
	"go.uber.org/zap"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

func TestEngineProgression(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "progression"), "curve.lua", `
function exp_for_level(level)
  return level * 2
end

local rewards = { Minion = 1, Dragon = 10 }
function monster_kill_xp(name)
  return rewards[name] or 0.5
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if got := e.NextLevelAt(3); got != 6 {
		t.Fatalf("NextLevelAt(3) = %v, want 6", got)
	}
	tests := map[world.Species]float64{
		world.SpeciesMinion: 1,
		world.SpeciesBeast:  0.5,
		world.SpeciesDragon: 10,
	}
	for s, want := range tests {
		if got := e.KillReward(s); got != want {
			t.Errorf("KillReward(%v) = %v, want %v", s, got, want)
		}
	}
}

func TestEngineFallbacks(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", `
function exp_for_level(level)
  error("no curve")
end

function monster_kill_xp(name)
  return "lots"
end
`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if got := e.NextLevelAt(4); got != 5 {
		t.Fatalf("NextLevelAt(4) = %v, want fallback 5", got)
	}
	if got := e.KillReward(world.SpeciesUndead); got != 1.0 {
		t.Fatalf("KillReward = %v, want fallback 1.0", got)
	}
}

func TestEngineMissingDir(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "none"), zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()
	if got := e.NextLevelAt(1); got != 2 {
		t.Fatalf("NextLevelAt(1) = %v, want 2", got)
	}
}

func TestEngineSyntaxError(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "bad.lua", "function (")
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestEngineDrivesLevelUp(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "curve.lua", `
function exp_for_level(level) return 1.05 end
`)
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	g, err := world.NewGrid([]string{"........", "........"})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	ws := world.NewState(g, world.Options{Progression: e})
	p, _ := ws.NewPlayer()
	p.GainPickupXP()
	if p.Level() != 2 {
		t.Fatalf("level = %d, want 2 under the scripted curve", p.Level())
	}
}
