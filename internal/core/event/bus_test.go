package event

import "testing"

func TestFlushDeliversInEmissionOrder(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e PlayerJoined) { got = append(got, "joined:"+string(e.Player)) })
	Subscribe(b, func(e PlayerLeft) { got = append(got, "left:"+string(e.Player)) })

	Emit(b, PlayerJoined{Player: '0'})
	Emit(b, PlayerLeft{Player: '0'})
	Emit(b, PlayerJoined{Player: '1'})
	if b.Pending() != 3 {
		t.Fatalf("pending = %d, want 3", b.Pending())
	}

	b.Flush()
	want := []string{"joined:0", "left:0", "joined:1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if b.Pending() != 0 {
		t.Fatalf("pending after flush = %d", b.Pending())
	}
}

func TestFlushWithoutSubscribers(t *testing.T) {
	b := NewBus()
	Emit(b, MonsterSlain{Species: "Minion"})
	b.Flush()
	if b.Pending() != 0 {
		t.Fatalf("pending = %d, want 0", b.Pending())
	}
}

func TestEmitOnNilBus(t *testing.T) {
	var b *Bus
	Emit(b, PlayerLeft{Player: '3'})
}

func TestHandlerEmitsDuringFlush(t *testing.T) {
	b := NewBus()
	var leveled int
	Subscribe(b, func(e TreasurePickedUp) { Emit(b, PlayerLeveled{Player: e.Player, Level: 2}) })
	Subscribe(b, func(e PlayerLeveled) { leveled = e.Level })
	Emit(b, TreasurePickedUp{Player: '0'})
	b.Flush()
	if leveled != 2 {
		t.Fatalf("leveled = %d, want 2", leveled)
	}
}
