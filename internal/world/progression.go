package world

// Progression supplies the experience curve. The scripting engine
// implements it; DefaultProgression is used when no scripts are loaded.
type Progression interface {
	// NextLevelAt is the experience a player at level must exceed to level up.
	NextLevelAt(level int) float64
	// KillReward is the experience granted for slaying a monster of the species.
	KillReward(s Species) float64
}

// DefaultProgression is the built-in curve: level+1, and the species table.
type DefaultProgression struct{}

func (DefaultProgression) NextLevelAt(level int) float64 { return float64(level + 1) }
func (DefaultProgression) KillReward(s Species) float64  { return s.KillReward() }
