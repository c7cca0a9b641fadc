package world

import "fmt"

// Species is the monster band fixed at spawn time from its level.
type Species int

const (
	SpeciesMinion Species = iota // level <= 5
	SpeciesBeast                 // level <= 10
	SpeciesUndead                // level <= 15
	SpeciesDragon
)

func (s Species) String() string {
	switch s {
	case SpeciesMinion:
		return "Minion"
	case SpeciesBeast:
		return "Beast"
	case SpeciesUndead:
		return "Undead"
	case SpeciesDragon:
		return "Dragon"
	default:
		return fmt.Sprintf("Species(%d)", int(s))
	}
}

// Glyph is the grid character drawn for the species.
func (s Species) Glyph() rune {
	switch s {
	case SpeciesBeast:
		return 'B'
	case SpeciesUndead:
		return 'U'
	case SpeciesDragon:
		return 'D'
	default:
		return 'M'
	}
}

// KillReward is the built-in experience granted for slaying the species.
func (s Species) KillReward() float64 {
	switch s {
	case SpeciesBeast:
		return 0.5
	case SpeciesUndead:
		return 1.0
	case SpeciesDragon:
		return 1.5
	default:
		return 0.2
	}
}

// SpeciesFor returns the band for a monster level.
func SpeciesFor(level int) Species {
	switch {
	case level <= 5:
		return SpeciesMinion
	case level <= 10:
		return SpeciesBeast
	case level <= 15:
		return SpeciesUndead
	default:
		return SpeciesDragon
	}
}

const (
	monsterBaseAttack      = 10
	monsterAttackPerLevel  = 1.2
	monsterHealthPerLevel  = 10
	monsterDefencePerLevel = 10
)

// Monster has no agency of its own; it only strikes back when hit in melee.
// Accessed only from the game loop goroutine.
type Monster struct {
	level   int
	species Species
	pos     Position
	attack  int
	maxHP   int
	hp      int
	defence int
}

// NewMonster creates a monster whose stats scale linearly with level.
func NewMonster(level int, pos Position) *Monster {
	hp := monsterHealthPerLevel * level
	return &Monster{
		level:   level,
		species: SpeciesFor(level),
		pos:     pos,
		attack:  int(monsterBaseAttack + monsterAttackPerLevel*float64(level-1)),
		maxHP:   hp,
		hp:      hp,
		defence: monsterDefencePerLevel * level,
	}
}

func (m *Monster) Level() int         { return m.level }
func (m *Monster) Species() Species   { return m.species }
func (m *Monster) Glyph() rune        { return m.species.Glyph() }
func (m *Monster) Position() Position { return m.pos }
func (m *Monster) Health() int        { return m.hp }
func (m *Monster) TotalHealth() int   { return m.maxHP }
func (m *Monster) SetHealth(hp int)   { m.hp = hp }
func (m *Monster) Attack() int        { return m.attack }
func (m *Monster) Defence() int       { return m.defence }
func (m *Monster) IsDead() bool       { return m.hp <= 0 }

func (m *Monster) TotalDefence() int {
	return int(float64(m.defence) * mitigationFactor)
}
