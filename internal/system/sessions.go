package system

import (
	"github.com/dungeons/server/internal/net"
	"github.com/dungeons/server/internal/world"
)

// SessionStore binds live sessions to their players, in connection order.
// Game loop only.
type SessionStore struct {
	order   []*net.Session
	players map[*net.Session]*world.Player
}

func NewSessionStore() *SessionStore {
	return &SessionStore{players: make(map[*net.Session]*world.Player)}
}

func (s *SessionStore) Add(sess *net.Session, p *world.Player) {
	if _, ok := s.players[sess]; ok {
		return
	}
	s.order = append(s.order, sess)
	s.players[sess] = p
}

// Remove unbinds sess and returns its player, or nil if it was unknown.
func (s *SessionStore) Remove(sess *net.Session) *world.Player {
	p, ok := s.players[sess]
	if !ok {
		return nil
	}
	delete(s.players, sess)
	for i, cur := range s.order {
		if cur == sess {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return p
}

// Player returns the player bound to sess, or nil.
func (s *SessionStore) Player(sess *net.Session) *world.Player {
	return s.players[sess]
}

func (s *SessionStore) Len() int { return len(s.order) }

// ForEach visits sessions in connection order.
func (s *SessionStore) ForEach(fn func(sess *net.Session, p *world.Player)) {
	for _, sess := range s.order {
		fn(sess, s.players[sess])
	}
}
