package handler

import (
	"github.com/dungeons/server/internal/world"
	"go.uber.org/zap"
)

// HandleAttack processes "attack melee <char>", "attack spell <char>" and
// "attack monster <direction>". Only the first character of the target
// argument is significant.
func HandleAttack(p *world.Player, cmd Command, deps *Deps) {
	target, ok := firstRune(cmd.Arg(1))
	if !ok {
		return
	}

	switch cmd.Arg(0) {
	case "melee":
		deps.World.MeleePlayer(p, target)
	case "spell":
		deps.World.SpellPlayer(p, target)
	case "monster":
		if target > 0x7f {
			return
		}
		d, ok := world.ParseDirection(byte(target))
		if !ok {
			deps.Log.Debug("無效攻擊方向", zap.String("dir", cmd.Arg(1)))
			return
		}
		deps.World.AttackMonster(p, d)
	default:
		deps.Log.Debug("未知攻擊類型", zap.String("kind", cmd.Arg(0)))
	}
}
