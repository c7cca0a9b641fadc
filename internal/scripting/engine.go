package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dungeons/server/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the progression curve.
// Single-goroutine access only (game loop).
type Engine struct {
	vm       *lua.LState
	log      *zap.Logger
	fallback world.DefaultProgression
}

var _ world.Progression = (*Engine)(nil)

// NewEngine creates a Lua engine and loads all scripts from the given
// directory, then from its optional progression/ subdirectory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	if err := e.loadDir(filepath.Join(scriptsDir, "progression")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load progression scripts: %w", err)
	}

	return e, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// NextLevelAt calls the Lua exp_for_level(level) function.
// Falls back to level+1 when the function is missing or fails.
func (e *Engine) NextLevelAt(level int) float64 {
	if v, ok := e.callNumber("exp_for_level", lua.LNumber(level)); ok {
		return v
	}
	return e.fallback.NextLevelAt(level)
}

// KillReward calls the Lua monster_kill_xp(name) function with the species
// name. Falls back to the species table when missing or failing.
func (e *Engine) KillReward(s world.Species) float64 {
	if v, ok := e.callNumber("monster_kill_xp", lua.LString(s.String())); ok {
		return v
	}
	return e.fallback.KillReward(s)
}

// callNumber calls a global Lua function expecting one numeric result.
func (e *Engine) callNumber(name string, args ...lua.LValue) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return 0, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		e.log.Warn("lua call error", zap.String("fn", name), zap.Error(err))
		return 0, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Warn("lua function returned non-number",
			zap.String("fn", name),
			zap.String("type", result.Type().String()),
		)
		return 0, false
	}
	return float64(n), true
}
