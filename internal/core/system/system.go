package system

// Phase defines execution ordering within a single step. One step runs per
// network event; there is no fixed tick.
type Phase int

const (
	PhaseInput   Phase = iota // 0: apply the event to the world
	PhaseOutput               // 1: broadcast frames
	PhasePersist              // 2: deliver world events to subscribers
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "Input"
	case PhaseOutput:
		return "Output"
	case PhasePersist:
		return "Persist"
	default:
		return "Phase(?)"
	}
}

// System is the interface every game loop stage implements.
type System interface {
	Phase() Phase
	Update()
}
