package net

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultWriteTimeout bounds a single broadcast write.
const DefaultWriteTimeout = 5 * time.Second

// Session represents a single client connection. The read goroutine only
// forwards lines; world state is touched by the game loop alone.
type Session struct {
	ID   uint64
	conn net.Conn
	IP   string

	events       chan<- Event
	done         <-chan struct{} // server shutdown
	maxLine      int
	writeTimeout time.Duration

	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool

	log *zap.Logger
}

func newSession(conn net.Conn, id uint64, events chan<- Event, done <-chan struct{}, opts Options, log *zap.Logger) *Session {
	return &Session{
		ID:           id,
		conn:         conn,
		IP:           conn.RemoteAddr().String(),
		events:       events,
		done:         done,
		maxLine:      opts.MaxLineLength,
		writeTimeout: opts.WriteTimeout,
		closeCh:      make(chan struct{}),
		log:          log.With(zap.Uint64("session", id)),
	}
}

// Write sends one frame synchronously under the write deadline.
// Partial writes are not retried. Called only from the game loop.
func (s *Session) Write(data []byte) error {
	if s.closed.Load() {
		return net.ErrClosed
	}
	if s.writeTimeout > 0 {
		// Never write without a deadline.
		if err := s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return fmt.Errorf("set write deadline: %w", err)
		}
	}
	if err := WriteFrame(s.conn, data); err != nil {
		if !s.closed.Load() {
			s.log.Debug("寫入錯誤", zap.Error(err))
		}
		return err
	}
	return nil
}

// Close shuts the connection. The read goroutine then reports EventClosed.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.closeCh)
		s.conn.Close()
	})
}

func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// readLoop runs in its own goroutine. It splits input into lines and
// pushes each onto the shared event channel, then reports the close.
// Blocking on a full channel only stalls this client.
func (s *Session) readLoop() {
	sc := NewLineScanner(s.conn, s.maxLine)
	for sc.Scan() {
		if !s.push(Event{Kind: EventLine, Session: s, Line: sc.Text()}) {
			s.Close()
			return
		}
	}

	err := sc.Err()
	s.Close()
	if IsDisconnect(err) {
		if err != nil {
			s.log.Debug("連線中斷", zap.Error(err))
		}
		err = nil
	}
	s.push(Event{Kind: EventClosed, Session: s, Err: err})
}

func (s *Session) push(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}
