package system

import (
	"fmt"

	coresys "github.com/dungeons/server/internal/core/system"
	"github.com/dungeons/server/internal/net"
	"github.com/dungeons/server/internal/net/packet"
	"github.com/dungeons/server/internal/world"
	"go.uber.org/zap"
)

// Broadcaster receives the grid-only frame after every step.
type Broadcaster interface {
	Broadcast(frame []byte)
}

// OutputSystem sends every connection the full grid followed by its own
// player's status. The grid is serialized once per step. Phase 1 (Output).
type OutputSystem struct {
	world      *world.State
	store      *SessionStore
	spectators Broadcaster
	fail       func(error)
	log        *zap.Logger
}

func NewOutputSystem(ws *world.State, store *SessionStore, spectators Broadcaster, fail func(error), log *zap.Logger) *OutputSystem {
	return &OutputSystem{
		world:      ws,
		store:      store,
		spectators: spectators,
		fail:       fail,
		log:        log,
	}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update() {
	g := packet.NewWriter()
	g.WriteGrid(s.world.Snapshot())
	grid := g.Bytes()

	s.store.ForEach(func(sess *net.Session, p *world.Player) {
		if sess.IsClosed() {
			return
		}
		w := packet.NewWriterFrom(grid)
		w.WriteS(p.Status())
		if err := sess.Write(w.Bytes()); err != nil {
			if net.IsDisconnect(err) {
				// The read side reports the close and the player is removed then.
				sess.Close()
				return
			}
			s.log.Error("廣播寫入失敗", zap.Uint64("session", sess.ID), zap.Error(err))
			s.fail(fmt.Errorf("session %d write: %w", sess.ID, err))
		}
	})

	if s.spectators != nil {
		s.spectators.Broadcast(grid)
	}
}
