package world

import (
	"math/rand"
	"strconv"
	"strings"
)

// MaxInventorySize is the number of items a player can carry.
const MaxInventorySize = 5

// Inventory is an ordered item list. Indices shift down on removal.
// Accessed only from the game loop goroutine.
type Inventory struct {
	items []Item
}

func NewInventory() *Inventory {
	return &Inventory{items: make([]Item, 0, MaxInventorySize)}
}

// Len returns the number of items carried.
func (inv *Inventory) Len() int { return len(inv.items) }

// IsFull returns true if inventory is at max capacity.
func (inv *Inventory) IsFull() bool { return len(inv.items) >= MaxInventorySize }

// Items returns a copy of the item list.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// At returns the item at index, or nil when out of range.
func (inv *Inventory) At(index int) Item {
	if index < 0 || index >= len(inv.items) {
		return nil
	}
	return inv.items[index]
}

// Add appends an item. Returns false (item discarded) when full.
func (inv *Inventory) Add(it Item) bool {
	if it == nil || inv.IsFull() {
		return false
	}
	inv.items = append(inv.items, it)
	return true
}

// RemoveAt removes and returns the item at index, or nil when out of range.
func (inv *Inventory) RemoveAt(index int) Item {
	it := inv.At(index)
	if it == nil {
		return nil
	}
	inv.items = append(inv.items[:index], inv.items[index+1:]...)
	return it
}

// RemoveRandom removes one uniformly chosen item. No-op when empty.
func (inv *Inventory) RemoveRandom(rng *rand.Rand) Item {
	if len(inv.items) == 0 {
		return nil
	}
	var i int
	if rng != nil {
		i = rng.Intn(len(inv.items))
	} else {
		i = rand.Intn(len(inv.items))
	}
	return inv.RemoveAt(i)
}

// Contains reports whether this exact item instance is carried.
func (inv *Inventory) Contains(it Item) bool {
	if it == nil {
		return false
	}
	for _, cur := range inv.items {
		if cur == it {
			return true
		}
	}
	return false
}

// String renders the numbered listing used in the status block.
func (inv *Inventory) String() string {
	var b strings.Builder
	for i, it := range inv.items {
		b.WriteString(strconv.Itoa(i))
		b.WriteByte('.')
		b.WriteString(it.String())
		b.WriteByte('\n')
	}
	return b.String()
}
