package realtime

import (
	"time"

	"github.com/gorilla/websocket"
)

// client é uma conexão websocket de um viewer
type client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	userID  string
	blocked map[string]struct{}
}

func newClient(h *Hub, conn *websocket.Conn, userID string, blocked []string) *client {
	set := make(map[string]struct{}, len(blocked))
	for _, id := range blocked {
		set[id] = struct{}{}
	}
	return &client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendBuffer),
		userID:  userID,
		blocked: set,
	}
}

func (c *client) blocks(actorID string) bool {
	_, ok := c.blocked[actorID]
	return ok
}

// readPump descarta mensagens do cliente; serve para detectar o fechamento
// e responder aos pongs
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("websocket read error", "user_id", c.userID, "error", err)
			}
			return
		}
	}
}

// writePump envia as atividades e os pings; é o único escritor da conexão
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
