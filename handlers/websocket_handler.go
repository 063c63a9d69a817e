package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Seyram02/nations-league/brackets"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict to the frontend origin once it is deployed.
		return true
	},
}

type WebSocketHandler struct {
	hub *brackets.Hub
}

func NewWebSocketHandler(hub *brackets.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeFeed upgrades the connection and joins the client to the tournament
// feed room, which carries match completion and bracket progression events.
func (h *WebSocketHandler) ServeFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade websocket connection: %v", err)
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: brackets.FeedRoom,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
