package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rafabene/socialnet-backend/internal/domain/entities"
	"github.com/rafabene/socialnet-backend/internal/domain/ports"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 32
	broadcastQueue = 256
)

// Renderer converte a atividade no payload JSON enviado aos clientes
type Renderer func(activity *entities.Activity) any

// Hub distribui atividades recém-registradas para as conexões websocket.
// Cada conexão recebe apenas atividades de atores fora da sua lista de bloqueio.
type Hub struct {
	upgrader   websocket.Upgrader
	render     Renderer
	logger     ports.Logger
	register   chan *client
	unregister chan *client
	broadcast  chan *entities.Activity
	done       chan struct{}
	stopOnce   sync.Once

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// NewHub cria um Hub. allowedOrigins vazio ou com "*" aceita qualquer origem.
func NewHub(render Renderer, allowedOrigins []string, logger ports.Logger) *Hub {
	h := &Hub{
		render:     render,
		logger:     logger,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan *entities.Activity, broadcastQueue),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

// Run processa registros e broadcasts até o contexto ser cancelado
func (h *Hub) Run(ctx context.Context) {
	defer h.stop()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("websocket client connected", "user_id", c.userID)

		case c := <-h.unregister:
			h.remove(c)

		case activity := <-h.broadcast:
			h.dispatch(activity)
		}
	}
}

// Publish implementa ports.ActivityPublisher. Nunca bloqueia: com a fila
// cheia ou o hub parado a atividade é descartada.
func (h *Hub) Publish(activity *entities.Activity) {
	if activity == nil {
		return
	}
	select {
	case <-h.done:
	case h.broadcast <- activity:
	default:
		h.logger.Warn("activity stream queue full, dropping activity", "activity_id", activity.ID)
	}
}

// ServeWS faz o upgrade da conexão e registra o viewer
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, viewerID string, blocked []string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := newClient(h, conn, viewerID, blocked)

	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		return conn.Close()
	}

	go c.writePump()
	go c.readPump()
	return nil
}

// ClientCount retorna o número de conexões ativas
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) dispatch(activity *entities.Activity) {
	payload, err := json.Marshal(h.render(activity))
	if err != nil {
		h.logger.Error("failed to encode activity", "activity_id", activity.ID, "error", err)
		return
	}

	h.mu.RLock()
	var slow []*client
	for c := range h.clients {
		if c.blocks(activity.ActorID) {
			continue
		}
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Warn("dropping slow websocket client", "user_id", c.userID)
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Debug("websocket client disconnected", "user_id", c.userID)
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.mu.Lock()
		defer h.mu.Unlock()
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
	})
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[o] = struct{}{}
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
