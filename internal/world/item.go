package world

import "fmt"

// Rarity is the cosmetic tier derived from an item's level.
// It only affects the display name, never the numbers.
type Rarity int

const (
	RarityApprentice Rarity = iota // level <= 5
	RarityJourneyman               // level <= 10
	RarityExpert                   // level <= 15
	RarityArtisan
)

func (r Rarity) String() string {
	switch r {
	case RarityApprentice:
		return "Apprentice"
	case RarityJourneyman:
		return "Journeyman"
	case RarityExpert:
		return "Expert"
	case RarityArtisan:
		return "Artisan"
	default:
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
}

// RarityFor returns the tier for an item level.
func RarityFor(level int) Rarity {
	switch {
	case level <= 5:
		return RarityApprentice
	case level <= 10:
		return RarityJourneyman
	case level <= 15:
		return RarityExpert
	default:
		return RarityArtisan
	}
}

// Item is a treasure that lies on the grid or sits in an inventory.
// Items are compared by identity (pointer), never by value.
type Item interface {
	Level() int
	Position() Position
	Rarity() Rarity
	Name() string
	// Damage is the melee bonus granted while equipped.
	Damage() int
	String() string
}

const (
	swordDamagePerLevel  = 2
	staffManaPerLevel    = 2
	staffSpellPerLevel   = 2.2
	shieldDefencePerLvl  = 10
	shieldDamagePerLevel = 1
)

type baseItem struct {
	level int
	pos   Position
}

func (b baseItem) Level() int         { return b.level }
func (b baseItem) Position() Position { return b.pos }
func (b baseItem) Rarity() Rarity     { return RarityFor(b.level) }

// Sword adds melee damage.
type Sword struct {
	baseItem
}

func NewSword(level int, pos Position) *Sword {
	return &Sword{baseItem{level: level, pos: pos}}
}

func (s *Sword) Name() string { return s.Rarity().String() + " Sword" }
func (s *Sword) Damage() int  { return swordDamagePerLevel * s.level }

func (s *Sword) String() string {
	return fmt.Sprintf("Name: %s Level:%d Damage:%d", s.Name(), s.level, s.Damage())
}

// Staff adds mana capacity and spell damage. It gives no melee damage.
type Staff struct {
	baseItem
}

func NewStaff(level int, pos Position) *Staff {
	return &Staff{baseItem{level: level, pos: pos}}
}

func (s *Staff) Name() string { return s.Rarity().String() + " Staff" }
func (s *Staff) Damage() int  { return 0 }

// Mana is the mana capacity granted while equipped.
func (s *Staff) Mana() int { return staffManaPerLevel * s.level }

// SpellDamage is the spell damage bonus granted while equipped.
func (s *Staff) SpellDamage() int { return int(staffSpellPerLevel * float64(s.level)) }

func (s *Staff) String() string {
	return fmt.Sprintf("Name: %s Level:%d Spell Damage:%d Mana:%d", s.Name(), s.level, s.SpellDamage(), s.Mana())
}

// Shield adds defence and a small melee bonus.
type Shield struct {
	baseItem
}

func NewShield(level int, pos Position) *Shield {
	return &Shield{baseItem{level: level, pos: pos}}
}

func (s *Shield) Name() string { return s.Rarity().String() + " Shield" }
func (s *Shield) Damage() int  { return shieldDamagePerLevel * s.level }
func (s *Shield) Defence() int { return shieldDefencePerLvl * s.level }

func (s *Shield) String() string {
	return fmt.Sprintf("Name: %s Level:%d Damage:%d Defence:%d", s.Name(), s.level, s.Damage(), s.Defence())
}
