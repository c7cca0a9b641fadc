package world

// Equip equips the inventory item at index, replacing any equipped item.
// A staff's mana bonus is added on equip and removed on unequip.
// Out of range is a no-op.
func (p *Player) Equip(index int) {
	it := p.inv.At(index)
	if it == nil {
		return
	}
	p.clearEquipped()
	p.equipped = it
	if s, ok := it.(*Staff); ok {
		p.maxMP += s.Mana()
		p.mp += s.Mana()
	}
}

// Unequip clears the equipped slot. The item stays in the inventory.
func (p *Player) Unequip() {
	p.clearEquipped()
}

func (p *Player) clearEquipped() {
	if s, ok := p.equipped.(*Staff); ok {
		p.maxMP -= s.Mana()
		// Not floored: current mana may go negative so that re-equipping
		// restores exactly what was removed.
		p.mp -= s.Mana()
	}
	p.equipped = nil
}
