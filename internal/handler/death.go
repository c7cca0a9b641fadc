package handler

import "github.com/dungeons/server/internal/world"

// HandleRespawn processes "respawn".
// Thin handler: a living player is left untouched by the world.
func HandleRespawn(p *world.Player, _ Command, deps *Deps) {
	if !p.IsDead() {
		return
	}
	deps.World.RespawnPlayer(p)
}
