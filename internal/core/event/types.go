package event

// Events emitted by the world. Identities are player glyphs.

type PlayerJoined struct {
	Player rune
	X, Y   int
}

type PlayerLeft struct {
	Player rune
}

type PlayerRespawned struct {
	Player rune
}

type PlayerLeveled struct {
	Player rune
	Level  int
}

type MonsterSlain struct {
	Killer  rune // 0 when the kill was not attributed
	Species string
	Level   int
	X, Y    int
}

type TreasurePickedUp struct {
	Player rune
	Item   string
	Level  int
}

type TreasureTraded struct {
	From, To rune
	Item     string
}
