package world

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/dungeons/server/internal/core/event"
)

var (
	ErrPlayerAlreadyConnected = errors.New("character already connected")
	ErrNoFreeCell             = errors.New("no empty cell to place player")
	ErrNoFreeIdentity         = errors.New("no free player identity")
)

// identities are handed out lowest-free-first.
const identities = "0123456789abcdefghijklmnopqrstuvwxyz"

const (
	DefaultMaxMonsters  = 5
	DefaultMaxTreasures = 5
)

// Options tunes a new State. Zero values select defaults.
type Options struct {
	MaxMonsters  int
	MaxTreasures int
	Rand         *rand.Rand
	Progression  Progression
	Bus          *event.Bus
}

// State is the authoritative world: terrain plus player, monster and
// treasure rosters. The rosters are the only source of truth for what
// occupies a cell; the displayed grid is drawn from them on demand.
// Accessed only from the game loop goroutine, so no locks are needed.
type State struct {
	grid      *Grid
	players   []*Player
	monsters  []*Monster
	treasures []Item

	maxMonsters  int
	maxTreasures int
	rng          *rand.Rand
	progression  Progression
	bus          *event.Bus
}

// NewState creates a world on grid and spawns the initial monsters and treasures.
func NewState(grid *Grid, opts Options) *State {
	if grid == nil {
		panic("world: NewState with nil grid")
	}
	s := &State{
		grid:         grid,
		maxMonsters:  opts.MaxMonsters,
		maxTreasures: opts.MaxTreasures,
		rng:          opts.Rand,
		progression:  opts.Progression,
		bus:          opts.Bus,
	}
	if s.maxMonsters <= 0 {
		s.maxMonsters = DefaultMaxMonsters
	}
	if s.maxTreasures <= 0 {
		s.maxTreasures = DefaultMaxTreasures
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if s.progression == nil {
		s.progression = DefaultProgression{}
	}

	s.PutTreasures()
	s.PutMonsters()
	return s
}

func (s *State) Grid() *Grid { return s.grid }

// Players returns the connected players in connection order.
func (s *State) Players() []*Player { return append([]*Player(nil), s.players...) }

// Monsters returns the monster roster, including dead ones not yet replaced.
func (s *State) Monsters() []*Monster { return append([]*Monster(nil), s.monsters...) }

// Treasures returns the treasures lying on the grid.
func (s *State) Treasures() []Item { return append([]Item(nil), s.treasures...) }

// PlayerByID returns the connected player with the given glyph, or nil.
func (s *State) PlayerByID(id rune) *Player {
	for _, p := range s.players {
		if p.id == id {
			return p
		}
	}
	return nil
}

// PlayerAt returns a player standing on pos, or nil.
func (s *State) PlayerAt(pos Position) *Player {
	for _, p := range s.players {
		if p.pos == pos {
			return p
		}
	}
	return nil
}

// MonsterAt returns the monster on pos, or nil.
func (s *State) MonsterAt(pos Position) *Monster {
	for _, m := range s.monsters {
		if m.pos == pos {
			return m
		}
	}
	return nil
}

// TreasureAt returns the treasure on pos, or nil.
func (s *State) TreasureAt(pos Position) Item {
	for _, t := range s.treasures {
		if t.Position() == pos {
			return t
		}
	}
	return nil
}

// IsEmpty reports whether pos is floor with nothing on it.
func (s *State) IsEmpty(pos Position) bool {
	if s.grid.IsWall(pos) {
		return false
	}
	return s.PlayerAt(pos) == nil && s.MonsterAt(pos) == nil && s.TreasureAt(pos) == nil
}

// CellAt returns the glyph displayed at pos.
func (s *State) CellAt(pos Position) rune {
	if !s.grid.InBounds(pos) {
		return CellWall
	}
	if p := s.PlayerAt(pos); p != nil {
		return p.id
	}
	if m := s.MonsterAt(pos); m != nil {
		return m.Glyph()
	}
	if s.TreasureAt(pos) != nil {
		return CellTreasure
	}
	return s.grid.cells[pos.Y][pos.X]
}

// Snapshot draws the full grid, row-major. Players are drawn over monsters,
// monsters over treasures.
func (s *State) Snapshot() []string {
	cells := s.grid.terrain()
	for _, t := range s.treasures {
		pos := t.Position()
		cells[pos.Y][pos.X] = CellTreasure
	}
	for _, m := range s.monsters {
		cells[m.pos.Y][m.pos.X] = m.Glyph()
	}
	for _, p := range s.players {
		if s.grid.InBounds(p.pos) {
			cells[p.pos.Y][p.pos.X] = p.id
		}
	}
	rows := make([]string, len(cells))
	for y, row := range cells {
		rows[y] = string(row)
	}
	return rows
}

// AverageLevel is the integer mean level of connected players, 1 when empty.
func (s *State) AverageLevel() int {
	if len(s.players) == 0 {
		return 1
	}
	sum := 0
	for _, p := range s.players {
		sum += p.level
	}
	if avg := sum / len(s.players); avg > 0 {
		return avg
	}
	return 1
}

// NewPlayer allocates the lowest free identity and returns a player that
// shares this world's random source and progression curve.
func (s *State) NewPlayer() (*Player, error) {
	for _, id := range identities {
		if s.PlayerByID(id) == nil {
			p := NewPlayer(id)
			s.adopt(p)
			return p, nil
		}
	}
	return nil, ErrNoFreeIdentity
}

func (s *State) adopt(p *Player) {
	p.rng = s.rng
	p.progression = s.progression
}

// ConnectPlayer places p on the first empty cell in row-major order.
func (s *State) ConnectPlayer(p *Player) error {
	if p == nil {
		panic("world: ConnectPlayer with nil player")
	}
	if s.PlayerByID(p.id) != nil {
		return fmt.Errorf("connect %q: %w", p.id, ErrPlayerAlreadyConnected)
	}
	for y := 0; y < s.grid.rows; y++ {
		for x := 0; x < s.grid.cols; x++ {
			pos := Position{x, y}
			if !s.IsEmpty(pos) {
				continue
			}
			s.adopt(p)
			p.pos = pos
			p.start = pos
			s.players = append(s.players, p)
			event.Emit(s.bus, event.PlayerJoined{Player: p.id, X: x, Y: y})
			return nil
		}
	}
	return fmt.Errorf("connect %q: %w", p.id, ErrNoFreeCell)
}

// DisconnectPlayer removes p from the world, freeing its cell and identity.
func (s *State) DisconnectPlayer(p *Player) {
	if p == nil {
		panic("world: DisconnectPlayer with nil player")
	}
	for i, cur := range s.players {
		if cur == p {
			s.players = append(s.players[:i], s.players[i+1:]...)
			event.Emit(s.bus, event.PlayerLeft{Player: p.id})
			return
		}
	}
}

// MovePlayer is the authoritative movement gate. Walls, players, monsters and
// treasures above the player's level block the move. A treasure at or below
// the player's level is picked up and replaced elsewhere.
func (s *State) MovePlayer(p *Player, d Direction) {
	if p.IsDead() {
		return
	}
	dest, ok := p.pos.Step(d)
	if !ok || !s.grid.InBounds(dest) {
		return
	}

	if s.IsEmpty(dest) {
		p.Move(d)
		return
	}

	t := s.TreasureAt(dest)
	if t == nil || t.Level() > p.level || s.PlayerAt(dest) != nil || s.MonsterAt(dest) != nil {
		return
	}

	before := p.level
	p.Move(d)
	s.removeTreasure(t)
	p.PutItem(t)
	p.GainPickupXP()
	event.Emit(s.bus, event.TreasurePickedUp{Player: p.id, Item: t.Name(), Level: t.Level()})
	s.noteLevel(p, before)
	s.PutTreasures()
}

// MeleePlayer makes p strike the player with glyph target.
func (s *State) MeleePlayer(p *Player, target rune) {
	if p.IsDead() {
		return
	}
	if t := s.PlayerByID(target); t != nil {
		p.AttackMelee(t)
	}
}

// SpellPlayer makes p cast at the player with glyph target.
func (s *State) SpellPlayer(p *Player, target rune) {
	if p.IsDead() {
		return
	}
	if t := s.PlayerByID(target); t != nil {
		p.AttackSpell(t)
	}
}

// AttackMonster makes p strike the monster in the neighbouring cell in
// direction d, then replaces a dead monster if there is one.
func (s *State) AttackMonster(p *Player, d Direction) {
	pos, ok := p.pos.Step(d)
	if !ok || !s.grid.InBounds(pos) {
		return
	}
	m := s.MonsterAt(pos)
	if m == nil {
		return
	}
	before := p.level
	wasDead := m.IsDead()
	p.AttackMelee(m)
	if !wasDead && m.IsDead() {
		event.Emit(s.bus, event.MonsterSlain{
			Killer:  p.id,
			Species: m.species.String(),
			Level:   m.level,
			X:       m.pos.X,
			Y:       m.pos.Y,
		})
	}
	s.noteLevel(p, before)
	s.CheckForDeadMonster()
}

// CheckForDeadMonster removes the first dead monster in the roster and
// spawns a replacement. At most one monster is removed per call.
func (s *State) CheckForDeadMonster() {
	for i, m := range s.monsters {
		if m.IsDead() {
			s.monsters = append(s.monsters[:i], s.monsters[i+1:]...)
			s.PutMonsters()
			return
		}
	}
}

// TradeItem hands the item at index from p to the player with glyph to.
func (s *State) TradeItem(p *Player, to rune, index int) {
	target := s.PlayerByID(to)
	if target == nil {
		return
	}
	it := p.inv.At(index)
	p.TradeItem(index, target)
	if it != nil && !p.inv.Contains(it) {
		event.Emit(s.bus, event.TreasureTraded{From: p.id, To: target.id, Item: it.Name()})
	}
}

// RespawnPlayer revives a dead player in place.
func (s *State) RespawnPlayer(p *Player) {
	if !p.IsDead() {
		return
	}
	p.Respawn()
	event.Emit(s.bus, event.PlayerRespawned{Player: p.id})
}

func (s *State) noteLevel(p *Player, before int) {
	if p.level > before {
		event.Emit(s.bus, event.PlayerLeveled{Player: p.id, Level: p.level})
	}
}

func (s *State) removeTreasure(t Item) {
	for i, cur := range s.treasures {
		if cur == t {
			s.treasures = append(s.treasures[:i], s.treasures[i+1:]...)
			return
		}
	}
}
