package handler

import "github.com/dungeons/server/internal/world"

// HandleTrade processes "trade <char> <index>". The index is the first
// character of its argument read as a single decimal digit, so only
// inventory slots 0-9 can be named.
func HandleTrade(p *world.Player, cmd Command, deps *Deps) {
	to, ok := firstRune(cmd.Arg(0))
	if !ok {
		return
	}
	digit := cmd.Arg(1)[0]
	if digit < '0' || digit > '9' {
		return
	}
	deps.World.TradeItem(p, to, int(digit-'0'))
}
