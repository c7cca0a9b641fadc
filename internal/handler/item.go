package handler

import (
	"strconv"

	"github.com/dungeons/server/internal/world"
)

// HandleEquip processes "equip <index>".
func HandleEquip(p *world.Player, cmd Command, deps *Deps) {
	index, err := strconv.Atoi(cmd.Arg(0))
	if err != nil {
		return
	}
	p.Equip(index)
}

// HandleUnequip processes "unequip". The item stays in the inventory.
func HandleUnequip(p *world.Player, _ Command, _ *Deps) {
	p.Unequip()
}

// HandleDrop processes "drop <index>". Dead players may drop too.
func HandleDrop(p *world.Player, cmd Command, _ *Deps) {
	index, err := strconv.Atoi(cmd.Arg(0))
	if err != nil {
		return
	}
	p.DropItem(index)
}
