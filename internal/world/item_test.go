package world

import "testing"

func TestRarityFor(t *testing.T) {
	tests := map[int]Rarity{
		1: RarityApprentice, 5: RarityApprentice,
		6: RarityJourneyman, 10: RarityJourneyman,
		11: RarityExpert, 15: RarityExpert,
		16: RarityArtisan, 40: RarityArtisan,
	}
	for level, want := range tests {
		if got := RarityFor(level); got != want {
			t.Errorf("RarityFor(%d) = %v, want %v", level, got, want)
		}
	}
}

func TestItemBonuses(t *testing.T) {
	sword := NewSword(7, Position{})
	if sword.Damage() != 14 || sword.Name() != "Journeyman Sword" {
		t.Fatalf("sword = %d %q", sword.Damage(), sword.Name())
	}
	staff := NewStaff(5, Position{})
	if staff.Mana() != 10 || staff.SpellDamage() != 11 || staff.Damage() != 0 {
		t.Fatalf("staff = mana %d spell %d dmg %d", staff.Mana(), staff.SpellDamage(), staff.Damage())
	}
	shield := NewShield(16, Position{2, 3})
	if shield.Defence() != 160 || shield.Damage() != 16 || shield.Name() != "Artisan Shield" {
		t.Fatalf("shield = def %d dmg %d %q", shield.Defence(), shield.Damage(), shield.Name())
	}
	if shield.Position() != (Position{2, 3}) {
		t.Fatalf("shield position = %v", shield.Position())
	}
}

func TestMonsterStats(t *testing.T) {
	tests := map[string]struct {
		level   int
		species Species
		glyph   rune
		attack  int
		hp      int
		mitig   int
	}{
		"minion": {level: 1, species: SpeciesMinion, glyph: 'M', attack: 10, hp: 10, mitig: 1},
		"beast":  {level: 6, species: SpeciesBeast, glyph: 'B', attack: 16, hp: 60, mitig: 6},
		"undead": {level: 15, species: SpeciesUndead, glyph: 'U', attack: 26, hp: 150, mitig: 15},
		"dragon": {level: 16, species: SpeciesDragon, glyph: 'D', attack: 28, hp: 160, mitig: 16},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMonster(tc.level, Position{})
			if m.Species() != tc.species || m.Glyph() != tc.glyph {
				t.Fatalf("species = %v %q", m.Species(), m.Glyph())
			}
			if m.Attack() != tc.attack || m.TotalHealth() != tc.hp || m.TotalDefence() != tc.mitig {
				t.Fatalf("stats = atk %d hp %d mitig %d", m.Attack(), m.TotalHealth(), m.TotalDefence())
			}
		})
	}
}

func TestPositionDistance(t *testing.T) {
	a := Position{0, 0}
	if d := a.Distance(Position{3, 0}); d != 3 {
		t.Fatalf("distance = %d, want 3", d)
	}
	if d := (Position{2, -1}).Distance(Position{-1, 3}); d != 7 {
		t.Fatalf("distance = %d, want 7", d)
	}
}

func TestNewGridRejectsBadInput(t *testing.T) {
	tests := map[string][]string{
		"no rows":   nil,
		"ragged":    {"...", ".."},
		"bad glyph": {"..X"},
		"empty row": {""},
	}
	for name, rows := range tests {
		if _, err := NewGrid(rows); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
