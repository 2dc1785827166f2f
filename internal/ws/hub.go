package ws

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/segmentio/encoding/json"
)

// Message is the envelope every session event is broadcast in.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Event types broadcast after mutations. Observers holding a session socket
// receive the fresh session aggregate with each of these.
const (
	EventMemberJoined     = "member_joined"
	EventMemberLeft       = "member_left"
	EventReadyChanged     = "ready_changed"
	EventVoteCast         = "vote_cast"
	EventItemAdded        = "item_added"
	EventSessionCompleted = "session_completed"
	EventSessionCancelled = "session_cancelled"
	EventSessionDeleted   = "session_deleted"
)

// Hub fans session events out to every connected observer of that session.
// It replaces the reactive-query push the original platform provided: each
// mutation handler broadcasts the latest aggregate here.
type Hub struct {
	mu       sync.RWMutex
	sessions map[uint]map[*websocket.Conn]bool
	bridge   *Bridge
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[uint]map[*websocket.Conn]bool),
	}
}

// SetBridge attaches a cross-instance relay. Broadcasts are then also
// published to peers; deliveries from peers go straight to local sockets.
func (h *Hub) SetBridge(b *Bridge) {
	h.bridge = b
}

func (h *Hub) AddConnection(sessionID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[sessionID] == nil {
		h.sessions[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.sessions[sessionID][conn] = true
	log.Printf("ws: client connected to session %d (total: %d)", sessionID, len(h.sessions[sessionID]))
}

func (h *Hub) RemoveConnection(sessionID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.sessions[sessionID]; ok {
		delete(conns, conn)
		conn.Close()
		if len(conns) == 0 {
			delete(h.sessions, sessionID)
		}
		log.Printf("ws: client disconnected from session %d", sessionID)
	}
}

// ConnectionCount reports how many observers a session currently has.
func (h *Hub) ConnectionCount(sessionID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) Broadcast(sessionID uint, message Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.deliver(sessionID, data)

	if h.bridge != nil {
		h.bridge.Publish(sessionID, data)
	}
}

// deliver writes raw bytes to the local sockets of one session.
func (h *Hub) deliver(sessionID uint, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.sessions[sessionID]
	if !ok {
		return
	}

	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
}
