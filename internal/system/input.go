package system

import (
	"errors"
	"fmt"

	coresys "github.com/dungeons/server/internal/core/system"
	"github.com/dungeons/server/internal/handler"
	"github.com/dungeons/server/internal/net"
	"github.com/dungeons/server/internal/world"
	"go.uber.org/zap"
)

// InputSystem applies queued network events to the world: connects new
// sessions, dispatches command lines and removes closed sessions.
// Phase 0 (Input).
type InputSystem struct {
	pending  []net.Event
	world    *world.State
	registry *handler.Registry
	store    *SessionStore
	fail     func(error)
	log      *zap.Logger
}

func NewInputSystem(ws *world.State, registry *handler.Registry, store *SessionStore, fail func(error), log *zap.Logger) *InputSystem {
	return &InputSystem{
		world:    ws,
		registry: registry,
		store:    store,
		fail:     fail,
		log:      log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Push queues an event for the next Update.
func (s *InputSystem) Push(ev net.Event) {
	s.pending = append(s.pending, ev)
}

func (s *InputSystem) Update() {
	for _, ev := range s.pending {
		switch ev.Kind {
		case net.EventAccepted:
			s.handleAccept(ev.Session)
		case net.EventLine:
			s.handleLine(ev.Session, ev.Line)
		case net.EventClosed:
			s.handleClose(ev.Session, ev.Err)
		}
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}

func (s *InputSystem) handleAccept(sess *net.Session) {
	p, err := s.world.NewPlayer()
	if err == nil {
		err = s.world.ConnectPlayer(p)
	}
	if err != nil {
		switch {
		case errors.Is(err, world.ErrNoFreeIdentity), errors.Is(err, world.ErrNoFreeCell):
			s.log.Warn("拒絕連線", zap.Uint64("session", sess.ID), zap.Error(err))
		default:
			s.log.Error("玩家連線失敗", zap.Uint64("session", sess.ID), zap.Error(err))
		}
		sess.Close()
		return
	}
	s.store.Add(sess, p)
	s.log.Info(fmt.Sprintf("玩家進入世界  session=%d  char=%c", sess.ID, p.ID()),
		zap.Int("x", p.Position().X),
		zap.Int("y", p.Position().Y),
	)
}

func (s *InputSystem) handleLine(sess *net.Session, line string) {
	p := s.store.Player(sess)
	if p == nil {
		return // refused or already removed
	}
	if err := s.registry.Dispatch(p, line); err != nil {
		s.log.Debug("指令分派錯誤",
			zap.Uint64("session", sess.ID),
			zap.Error(err),
		)
	}
}

// handleClose removes the session's player. A read failure that was not a
// plain disconnect is fatal for the whole server.
func (s *InputSystem) handleClose(sess *net.Session, readErr error) {
	if p := s.store.Remove(sess); p != nil {
		s.world.DisconnectPlayer(p)
		s.log.Info(fmt.Sprintf("玩家離線  session=%d  char=%c", sess.ID, p.ID()))
	}
	if readErr != nil {
		var id uint64
		if sess != nil {
			id = sess.ID
		}
		s.log.Error("連線讀取失敗", zap.Uint64("session", id), zap.Error(readErr))
		s.fail(fmt.Errorf("session %d read: %w", id, readErr))
	}
}
