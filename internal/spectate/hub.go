package spectate

import (
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Path is the HTTP route that upgrades to the spectator feed.
const Path = "/spectate"

const writeWait = 5 * time.Second

type spectator struct {
	id   uint64
	out  chan []byte
	done chan struct{}
	once sync.Once
}

func (s *spectator) close() {
	s.once.Do(func() { close(s.done) })
}

// Hub fans grid frames out to WebSocket spectators. Spectators only
// receive; anything they send is discarded.
type Hub struct {
	upgrader websocket.Upgrader
	sendBuf  int
	nextID   atomic.Uint64
	log      *zap.Logger

	mu      sync.Mutex
	clients map[uint64]*spectator
	last    []byte
}

func NewHub(sendBuf int, log *zap.Logger) *Hub {
	if sendBuf <= 0 {
		sendBuf = 16
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sendBuf: sendBuf,
		log:     log,
		clients: make(map[uint64]*spectator),
	}
}

// Mux returns a handler serving the feed at Path.
func (h *Hub) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, h.Handler())
	return mux
}

// Broadcast queues frame for every spectator without blocking. A spectator
// whose buffer is full is dropped. Called from the game loop.
func (h *Hub) Broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = frame
	for id, s := range h.clients {
		select {
		case s.out <- frame:
		default:
			h.log.Warn("觀戰者緩衝已滿，斷開連線", zap.Uint64("spectator", id))
			delete(h.clients, id)
			s.close()
		}
	}
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.clients {
		delete(h.clients, id)
		s.close()
	}
}

func (h *Hub) join() *spectator {
	s := &spectator{
		id:   h.nextID.Add(1),
		out:  make(chan []byte, h.sendBuf),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	if h.last != nil {
		s.out <- h.last
	}
	h.clients[s.id] = s
	h.mu.Unlock()
	return s
}

func (h *Hub) leave(s *spectator) {
	h.mu.Lock()
	delete(h.clients, s.id)
	h.mu.Unlock()
	s.close()
}

// Handler upgrades the request and streams frames until either side closes.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			h.log.Debug("觀戰升級失敗", zap.Error(err))
			return
		}
		defer conn.Close()

		s := h.join()
		defer h.leave(s)
		log := h.log.With(zap.Uint64("spectator", s.id))
		log.Info("觀戰者連線", zap.String("ip", r.RemoteAddr))

		// Reader goroutine: discard input, notice the close.
		go func() {
			defer s.close()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-s.done:
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
					time.Now().Add(time.Second))
				log.Info("觀戰者離線")
				return
			case frame := <-s.out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
					log.Debug("觀戰寫入錯誤", zap.Error(err))
					return
				}
			}
		}
	}
}
