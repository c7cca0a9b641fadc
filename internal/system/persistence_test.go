package system

import (
	"testing"

	"github.com/dungeons/server/internal/core/event"
)

func TestPersistenceSystemFlushesPending(t *testing.T) {
	bus := event.NewBus()
	var left []rune
	event.Subscribe(bus, func(e event.PlayerLeft) { left = append(left, e.Player) })

	sys := NewPersistenceSystem(bus)
	sys.Update()
	if len(left) != 0 {
		t.Fatalf("delivered %q from an empty bus", left)
	}

	event.Emit(bus, event.PlayerLeft{Player: '4'})
	sys.Update()
	if len(left) != 1 || left[0] != '4' || bus.Pending() != 0 {
		t.Fatalf("delivered %q, pending %d", left, bus.Pending())
	}

	NewPersistenceSystem(nil).Update()
}
