package handler

import (
	"github.com/dungeons/server/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into all command handlers.
type Deps struct {
	World *world.State
	Log   *zap.Logger
}

// RegisterAll registers all command handlers into the registry.
func RegisterAll(reg *Registry, deps *Deps) {
	// Movement: a bare direction key
	for _, key := range []string{"w", "a", "s", "d"} {
		reg.Register(key, 0, 0, func(p *world.Player, cmd Command) {
			HandleMove(p, cmd, deps)
		})
	}

	// Combat
	reg.Register("attack", 2, AnyArgs, func(p *world.Player, cmd Command) {
		HandleAttack(p, cmd, deps)
	})
	reg.Register("respawn", 0, 0, func(p *world.Player, cmd Command) {
		HandleRespawn(p, cmd, deps)
	})

	// Inventory
	reg.Register("equip", 1, AnyArgs, func(p *world.Player, cmd Command) {
		HandleEquip(p, cmd, deps)
	})
	reg.Register("unequip", 0, 0, func(p *world.Player, cmd Command) {
		HandleUnequip(p, cmd, deps)
	})
	reg.Register("drop", 1, AnyArgs, func(p *world.Player, cmd Command) {
		HandleDrop(p, cmd, deps)
	})
	reg.Register("trade", 2, AnyArgs, func(p *world.Player, cmd Command) {
		HandleTrade(p, cmd, deps)
	})
}

// NewDispatcher builds a registry with every command registered.
func NewDispatcher(ws *world.State, log *zap.Logger) *Registry {
	reg := NewRegistry(log)
	RegisterAll(reg, &Deps{World: ws, Log: log})
	return reg
}

// firstRune returns the leading character of s, which the protocol uses to
// name a player glyph or a direction.
func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}
