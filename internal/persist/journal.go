package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/dungeons/server/internal/core/event"
	"go.uber.org/zap"
)

// JournalEntry is one row of the world journal.
type JournalEntry struct {
	Kind   string
	Actor  string
	Target string
	Item   string
	Level  int
	X, Y   *int // nil when the event has no position
	At     time.Time
}

// Journal appends world events to the world_journal table. Entries are
// queued from the game loop and written by a separate goroutine, so a slow
// or failing database never stalls gameplay.
type Journal struct {
	db    *DB
	queue chan JournalEntry
	batch int
	log   *zap.Logger
}

func NewJournal(db *DB, queueSize int, log *zap.Logger) *Journal {
	if queueSize <= 0 {
		queueSize = 1024
	}
	return &Journal{
		db:    db,
		queue: make(chan JournalEntry, queueSize),
		batch: 64,
		log:   log,
	}
}

// Attach subscribes the journal to every world event on bus.
func (j *Journal) Attach(bus *event.Bus) {
	event.Subscribe(bus, func(e event.PlayerJoined) { j.Record(entryFor(e)) })
	event.Subscribe(bus, func(e event.PlayerLeft) { j.Record(entryFor(e)) })
	event.Subscribe(bus, func(e event.PlayerRespawned) { j.Record(entryFor(e)) })
	event.Subscribe(bus, func(e event.PlayerLeveled) { j.Record(entryFor(e)) })
	event.Subscribe(bus, func(e event.MonsterSlain) { j.Record(entryFor(e)) })
	event.Subscribe(bus, func(e event.TreasurePickedUp) { j.Record(entryFor(e)) })
	event.Subscribe(bus, func(e event.TreasureTraded) { j.Record(entryFor(e)) })
}

// Record queues an entry without blocking. A full queue drops the entry.
func (j *Journal) Record(e JournalEntry) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	select {
	case j.queue <- e:
	default:
		j.log.Warn("日誌佇列已滿，丟棄事件", zap.String("kind", e.Kind))
	}
}

// Run writes queued entries in batches until ctx is done, then drains
// what is left with a short deadline.
func (j *Journal) Run(ctx context.Context) {
	pending := make([]JournalEntry, 0, j.batch)
	for {
		select {
		case <-ctx.Done():
			for {
				pending = j.collect(pending[:0])
				if len(pending) == 0 {
					return
				}
				drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				j.flush(drainCtx, pending)
				cancel()
			}
		case e := <-j.queue:
			pending = j.collect(append(pending[:0], e))
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			j.flush(writeCtx, pending)
			cancel()
		}
	}
}

// collect appends whatever is already queued, up to one batch.
func (j *Journal) collect(pending []JournalEntry) []JournalEntry {
	for len(pending) < j.batch {
		select {
		case e := <-j.queue:
			pending = append(pending, e)
		default:
			return pending
		}
	}
	return pending
}

func (j *Journal) flush(ctx context.Context, entries []JournalEntry) {
	if err := j.WriteEntries(ctx, entries); err != nil {
		j.log.Warn("日誌寫入失敗", zap.Int("entries", len(entries)), zap.Error(err))
	}
}

// WriteEntries atomically writes a batch of entries in a single transaction.
func (j *Journal) WriteEntries(ctx context.Context, entries []JournalEntry) error {
	tx, err := j.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("journal begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO world_journal (kind, actor, target, item, level, pos_x, pos_y, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			e.Kind, e.Actor, e.Target, e.Item, e.Level, e.X, e.Y, e.At,
		); err != nil {
			return fmt.Errorf("journal insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func glyph(r rune) string {
	if r == 0 {
		return ""
	}
	return string(r)
}

func at(x, y int) (*int, *int) {
	return &x, &y
}

// entryFor maps a world event to its journal row.
func entryFor(ev any) JournalEntry {
	switch e := ev.(type) {
	case event.PlayerJoined:
		x, y := at(e.X, e.Y)
		return JournalEntry{Kind: "player_joined", Actor: glyph(e.Player), X: x, Y: y}
	case event.PlayerLeft:
		return JournalEntry{Kind: "player_left", Actor: glyph(e.Player)}
	case event.PlayerRespawned:
		return JournalEntry{Kind: "player_respawned", Actor: glyph(e.Player)}
	case event.PlayerLeveled:
		return JournalEntry{Kind: "player_leveled", Actor: glyph(e.Player), Level: e.Level}
	case event.MonsterSlain:
		x, y := at(e.X, e.Y)
		return JournalEntry{Kind: "monster_slain", Actor: glyph(e.Killer), Target: e.Species, Level: e.Level, X: x, Y: y}
	case event.TreasurePickedUp:
		return JournalEntry{Kind: "treasure_picked_up", Actor: glyph(e.Player), Item: e.Item, Level: e.Level}
	case event.TreasureTraded:
		return JournalEntry{Kind: "treasure_traded", Actor: glyph(e.From), Target: glyph(e.To), Item: e.Item}
	default:
		return JournalEntry{Kind: fmt.Sprintf("%T", ev)}
	}
}
