package net

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// EventKind tells the game loop what happened on a connection.
type EventKind int

const (
	EventAccepted EventKind = iota
	EventLine
	EventClosed
)

func (k EventKind) String() string {
	switch k {
	case EventAccepted:
		return "Accepted"
	case EventLine:
		return "Line"
	case EventClosed:
		return "Closed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one unit of work for the game loop. For a session, Accepted is
// always delivered before its Lines, and Closed after them.
type Event struct {
	Kind    EventKind
	Session *Session
	Line    string
	// Err is set on EventClosed when the read failed for a reason other
	// than the peer disconnecting.
	Err error
}

// Options tunes the transport. Zero values select defaults.
type Options struct {
	QueueSize     int
	MaxLineLength int
	WriteTimeout  time.Duration
}

// Server accepts TCP connections and creates Sessions. Every accept, line
// and close is funnelled onto one channel for the game loop.
type Server struct {
	listener net.Listener
	nextID   atomic.Uint64
	events   chan Event
	errCh    chan error
	opts     Options
	log      *zap.Logger
	closeCh  chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	sessions map[uint64]*Session
}

func NewServer(bindAddr string, opts Options, log *zap.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", bindAddr, err)
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.MaxLineLength <= 0 {
		opts.MaxLineLength = DefaultMaxLineLength
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	s := &Server{
		listener: ln,
		events:   make(chan Event, opts.QueueSize),
		errCh:    make(chan error, 1),
		opts:     opts,
		log:      log,
		closeCh:  make(chan struct{}),
		sessions: make(map[uint64]*Session),
	}
	return s, nil
}

// AcceptLoop runs in its own goroutine. It accepts connections, announces
// each session to the game loop, then starts its reader. An accept failure
// other than shutdown is reported on Errors and ends the loop.
func (s *Server) AcceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.closeCh:
				return // server shutting down
			default:
			}
			s.log.Error("連線接受失敗", zap.Error(err))
			s.errCh <- fmt.Errorf("accept: %w", err)
			return
		}

		id := s.nextID.Add(1)
		sess := newSession(conn, id, s.events, s.closeCh, s.opts, s.log)

		s.mu.Lock()
		select {
		case <-s.closeCh:
			s.mu.Unlock()
			sess.Close()
			return
		default:
		}
		s.sessions[id] = sess
		s.mu.Unlock()

		s.log.Info(fmt.Sprintf("玩家連線  session=%d  ip=%s", id, sess.IP))

		select {
		case s.events <- Event{Kind: EventAccepted, Session: sess}:
		case <-s.closeCh:
			sess.Close()
			return
		}
		go func() {
			sess.readLoop()
			s.forget(sess.ID)
		}()
	}
}

func (s *Server) forget(id uint64) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Events returns the channel consumed by the game loop.
func (s *Server) Events() <-chan Event {
	return s.events
}

// Errors reports fatal accept failures.
func (s *Server) Errors() <-chan error {
	return s.errCh
}

// Shutdown stops accepting new connections and closes every session.
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		close(s.closeCh)
		for _, sess := range s.sessions {
			sess.Close()
		}
		s.mu.Unlock()
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.log.Warn("監聽關閉失敗", zap.Error(err))
		}
	})
}

// Addr returns the listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}
