package brackets

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// FeedRoom is the room every tournament feed client joins. The league runs a
// single bracket, so one room is enough; the room map stays generic in case
// per-match rooms are wanted later.
const FeedRoom = "tournament"

const (
	MessageMatchCompleted  = "MATCH_COMPLETED"
	MessageBracketAdvanced = "BRACKET_ADVANCED"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

type FeedMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	Hub    *Hub
	Conn   *websocket.Conn
	Send   chan []byte
	Room   string
	mu     sync.Mutex
	closed bool
}

// Hub fans tournament updates out to connected websocket clients, grouped
// by room.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client

	mu    sync.RWMutex
	rooms map[string]map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.rooms[client.Room]; !ok {
				h.rooms[client.Room] = make(map[*Client]bool)
			}
			h.rooms[client.Room][client] = true
			log.Printf("feed client joined room %s (%d connected)", client.Room, len(h.rooms[client.Room]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.Room]; ok {
				if _, member := room[client]; member {
					client.closeSend()
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.Room)
					}
					log.Printf("feed client left room %s", client.Room)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom marshals the message and queues it on every client in the
// room. Clients with a full send buffer are skipped, not blocked on.
func (h *Hub) BroadcastToRoom(room string, msg FeedMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("feed message marshal failed for room %s: %v", room, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[room] {
		client.mu.Lock()
		if !client.closed {
			select {
			case client.Send <- payload:
			default:
				log.Printf("feed client in room %s too slow, dropping message", room)
			}
		}
		client.mu.Unlock()
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

// ReadPump drains the connection until the client disconnects; inbound
// messages are ignored, the feed is one-way.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unregister <- c
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("feed read error in room %s: %v", c.Room, err)
			}
			return
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("feed write error in room %s: %v", c.Room, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
