package system

import (
	"github.com/dungeons/server/internal/core/event"
	coresys "github.com/dungeons/server/internal/core/system"
)

// PersistenceSystem delivers the world events raised during the step to
// their subscribers (the journal among them), after the broadcast has gone
// out. Phase 2 (Persist).
type PersistenceSystem struct {
	bus *event.Bus
}

func NewPersistenceSystem(bus *event.Bus) *PersistenceSystem {
	return &PersistenceSystem{bus: bus}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update() {
	if s.bus == nil || s.bus.Pending() == 0 {
		return
	}
	s.bus.Flush()
}
