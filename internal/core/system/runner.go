package system

import "sort"

// Runner executes systems in phase order each step.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 4),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Step runs every system once, lowest phase first. Systems sharing a phase
// keep their registration order.
func (r *Runner) Step() {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update()
	}
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
