package handler

import "github.com/dungeons/server/internal/world"

// HandleMove processes "w", "a", "s" and "d".
// Thin handler: the world decides walls, collisions and pickups.
func HandleMove(p *world.Player, cmd Command, deps *Deps) {
	d, ok := world.ParseDirection(cmd.Name[0])
	if !ok {
		return
	}
	deps.World.MovePlayer(p, d)
}
