package world

// treasureKinds is the number of item kinds a spawned treasure is drawn from.
const treasureKinds = 3

// PutMonsters tops the monster roster up to its target size. Each monster
// lands on a uniformly sampled empty cell with a level in [1, AverageLevel].
func (s *State) PutMonsters() {
	for len(s.monsters) < s.maxMonsters {
		pos, ok := s.randomEmptyCell()
		if !ok {
			return
		}
		s.monsters = append(s.monsters, NewMonster(s.spawnLevel(), pos))
	}
}

// PutTreasures tops the treasure roster up to its target size.
func (s *State) PutTreasures() {
	for len(s.treasures) < s.maxTreasures {
		pos, ok := s.randomEmptyCell()
		if !ok {
			return
		}
		var t Item
		switch s.rng.Intn(treasureKinds) {
		case 0:
			t = NewSword(s.spawnLevel(), pos)
		case 1:
			t = NewStaff(s.spawnLevel(), pos)
		default:
			t = NewShield(s.spawnLevel(), pos)
		}
		s.treasures = append(s.treasures, t)
	}
}

func (s *State) spawnLevel() int {
	return s.rng.Intn(s.AverageLevel()) + 1
}

// randomEmptyCell rejection-samples the grid. ok is false when the grid has
// no empty cell at all.
func (s *State) randomEmptyCell() (Position, bool) {
	if !s.hasEmptyCell() {
		return Position{}, false
	}
	for {
		pos := Position{s.rng.Intn(s.grid.cols), s.rng.Intn(s.grid.rows)}
		if s.IsEmpty(pos) {
			return pos, true
		}
	}
}

func (s *State) hasEmptyCell() bool {
	for y := 0; y < s.grid.rows; y++ {
		for x := 0; x < s.grid.cols; x++ {
			if s.IsEmpty(Position{x, y}) {
				return true
			}
		}
	}
	return false
}
