package world

// Actor is anything that can fight: players and monsters.
type Actor interface {
	Position() Position
	Health() int
	TotalHealth() int
	SetHealth(hp int)
	Attack() int
	Defence() int
	// TotalDefence is the mitigated defence subtracted from incoming melee damage.
	TotalDefence() int
	IsDead() bool
}

// mitigationFactor scales raw defence into damage mitigation.
const mitigationFactor = 0.1

// ClampHealth floors an actor's health at zero after combat.
func ClampHealth(a Actor) {
	if a.Health() < 0 {
		a.SetHealth(0)
	}
}
