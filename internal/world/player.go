package world

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

const (
	startHealth      = 100
	startMana        = 124
	startLevel       = 1
	startAttack      = 50
	startDefence     = 50
	startSpellDamage = 50

	attackPerLevel      = 5
	defencePerLevel     = 5
	spellDamagePerLevel = 5
	manaPerLevel        = 10
	healthPerLevel      = 10

	pickupXP = 0.1

	meleeRange = 1
	spellRange = 2
	tradeRange = 1
	spellCost  = 20
)

// Player is a connected character. Its grid glyph is its identity.
// Accessed only from the game loop goroutine.
type Player struct {
	id    rune
	pos   Position
	start Position

	maxHP int
	hp    int
	maxMP int
	mp    int

	level int
	xp    float64 // fractional experience level; starts at 1.0

	attack      int
	defence     int
	spellDamage int

	inv      *Inventory
	equipped Item // always an element of inv, or nil

	progression Progression
	rng         *rand.Rand
}

// NewPlayer creates a level 1 player with the given identity.
// Normally called through State.NewPlayer, which allocates the identity.
func NewPlayer(id rune) *Player {
	return &Player{
		id:          id,
		maxHP:       startHealth,
		hp:          startHealth,
		maxMP:       startMana,
		mp:          startMana,
		level:       startLevel,
		xp:          startLevel,
		attack:      startAttack,
		defence:     startDefence,
		spellDamage: startSpellDamage,
		inv:         NewInventory(),
		progression: DefaultProgression{},
	}
}

func (p *Player) ID() rune                 { return p.id }
func (p *Player) Position() Position       { return p.pos }
func (p *Player) SetPosition(pos Position) { p.pos = pos }
func (p *Player) StartPosition() Position  { return p.start }
func (p *Player) Health() int              { return p.hp }
func (p *Player) TotalHealth() int         { return p.maxHP }
func (p *Player) SetHealth(hp int)         { p.hp = hp }
func (p *Player) Mana() int                { return p.mp }
func (p *Player) TotalMana() int           { return p.maxMP }
func (p *Player) Level() int               { return p.level }
func (p *Player) Experience() float64      { return p.xp }
func (p *Player) Attack() int              { return p.attack }
func (p *Player) Defence() int             { return p.defence }
func (p *Player) Inventory() *Inventory    { return p.inv }
func (p *Player) Equipped() Item           { return p.equipped }
func (p *Player) IsDead() bool             { return p.hp <= 0 }

// TotalAttack is base attack plus the equipped item's damage bonus.
func (p *Player) TotalAttack() int {
	total := p.attack
	if p.equipped != nil {
		total += p.equipped.Damage()
	}
	return total
}

// TotalDefence is (base defence + shield bonus) scaled by the mitigation factor.
func (p *Player) TotalDefence() int {
	total := p.defence
	if s, ok := p.equipped.(*Shield); ok {
		total += s.Defence()
	}
	return int(float64(total) * mitigationFactor)
}

// TotalSpellDamage is base spell damage plus an equipped staff's bonus.
func (p *Player) TotalSpellDamage() int {
	total := p.spellDamage
	if s, ok := p.equipped.(*Staff); ok {
		total += s.SpellDamage()
	}
	return total
}

// Move shifts the player one cell. Bounds and collisions are checked by
// State.MovePlayer, not here.
func (p *Player) Move(d Direction) {
	if p.IsDead() {
		return
	}
	if next, ok := p.pos.Step(d); ok {
		p.pos = next
	}
}

// AttackMelee strikes target if it is within melee range. A monster target
// always strikes back with its raw attack, in range or not.
func (p *Player) AttackMelee(target Actor) {
	if p.IsDead() || target == nil {
		return
	}
	if other, ok := target.(*Player); ok && other == p {
		return
	}

	if p.pos.Distance(target.Position()) <= meleeRange {
		dmg := p.TotalAttack() - target.TotalDefence()
		if dmg < 0 {
			dmg = 0
		}
		target.SetHealth(target.Health() - dmg)
	}
	ClampHealth(target)

	if m, ok := target.(*Monster); ok {
		p.hp -= m.Attack()
		if m.IsDead() {
			p.gainXP(p.progression.KillReward(m.Species()))
		}
	}
	ClampHealth(p)
}

// AttackSpell casts at target. Needs range 2 and spellCost mana.
func (p *Player) AttackSpell(target *Player) {
	if target == nil || p.IsDead() || target == p {
		return
	}
	if p.pos.Distance(target.pos) > spellRange || p.mp < spellCost {
		return
	}
	target.hp -= p.TotalSpellDamage()
	ClampHealth(target)
	p.mp -= spellCost
}

// PutItem adds an item to the inventory, silently dropping it when full.
func (p *Player) PutItem(it Item) {
	p.inv.Add(it)
}

// DropItem discards the item at index. Out of range is a no-op.
func (p *Player) DropItem(index int) {
	it := p.inv.RemoveAt(index)
	if it != nil && it == p.equipped {
		p.clearEquipped()
	}
}

// TradeItem hands the item at index to an adjacent player with room for it.
func (p *Player) TradeItem(index int, to *Player) {
	if to == nil {
		panic("world: TradeItem with nil player")
	}
	if to == p || p.pos.Distance(to.pos) > tradeRange || to.inv.IsFull() {
		return
	}
	it := p.inv.RemoveAt(index)
	if it == nil {
		return
	}
	if it == p.equipped {
		p.clearEquipped()
	}
	to.inv.Add(it)
}

// GainPickupXP awards the fixed experience for picking up a treasure.
func (p *Player) GainPickupXP() {
	p.gainXP(pickupXP)
}

func (p *Player) gainXP(amount float64) {
	p.xp += amount
	// One level per call, even if xp overshoots further.
	if p.xp > p.progression.NextLevelAt(p.level) {
		p.LevelUp()
	}
}

// LevelUp raises the level by one and fully restores health and mana.
func (p *Player) LevelUp() {
	p.level++
	p.attack += attackPerLevel
	p.defence += defencePerLevel
	p.spellDamage += spellDamagePerLevel
	p.maxMP += manaPerLevel
	p.mp = p.maxMP
	p.maxHP += healthPerLevel
	p.hp = p.maxHP
}

// Respawn revives a dead player at full health, losing one random item.
// Position is left unchanged.
func (p *Player) Respawn() {
	if !p.IsDead() {
		return
	}
	p.hp = p.maxHP
	p.inv.RemoveRandom(p.rng)
	if p.equipped != nil && !p.inv.Contains(p.equipped) {
		p.clearEquipped()
	}
}

// Status renders the per-connection text block sent after the grid.
func (p *Player) Status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Level:%.2f/%s | Health:%d/%d | Mana:%d/%d\n",
		math.Round(p.xp*100)/100, formatThreshold(p.progression.NextLevelAt(p.level)),
		p.hp, p.maxHP, p.mp, p.maxMP)
	b.WriteString(p.inv.String())
	b.WriteString("Equipped Treasure: ")
	if p.equipped != nil {
		b.WriteString(p.equipped.String())
	} else {
		b.WriteString("none")
	}
	return b.String()
}

func formatThreshold(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.2f", v)
}
