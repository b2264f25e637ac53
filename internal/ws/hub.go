// Package ws exposes the command protocol and a live frame preview over
// websockets, replacing the serial link for desktop clients.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/SeanoNET/PicoPixels/internal/render"
)

// writeTimeout bounds every websocket write. BroadcastFrame and command
// replies run on the engine goroutine, so a stalled client must never be
// allowed to hold up the frame cadence.
const writeTimeout = 200 * time.Millisecond

// framePayload is the JSON snapshot broadcast to preview clients.
type framePayload struct {
	Type   string  `json:"type"`
	ID     uint64  `json:"id"`
	Width  int     `json:"w"`
	Height int     `json:"h"`
	Pixels []uint8 `json:"pixels"`
}

// Hub fans command lines into the engine's request channel and fans
// committed frames out to preview clients.
type Hub struct {
	requests chan<- render.Request
	log      zerolog.Logger
	up       websocket.Upgrader

	mu      sync.Mutex
	frameID uint64
	viewers map[*websocket.Conn]bool
}

func NewHub(requests chan<- render.Request, log zerolog.Logger) *Hub {
	return &Hub{
		requests: requests,
		log:      log,
		up:       websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		viewers:  map[*websocket.Conn]bool{},
	}
}

// Routes registers the hub's endpoints on mux.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/control", h.handleControl)
	mux.HandleFunc("/frames", h.handleFrames)
	mux.HandleFunc("/health", h.handleHealth)
}

// BroadcastFrame is wired to the engine's commit hook. The lock covers
// only the viewer snapshot; the writes happen outside it, each bounded
// by writeTimeout, so a slow viewer can neither stall the engine
// goroutine nor block /frames registration and /health.
func (h *Hub) BroadcastFrame(w, hgt int, pix []uint8) {
	h.mu.Lock()
	h.frameID++
	payload := framePayload{Type: "frame", ID: h.frameID, Width: w, Height: hgt, Pixels: pix}
	conns := make([]*websocket.Conn, 0, len(h.viewers))
	for conn := range h.viewers {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	var dead []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			dead = append(dead, conn)
		}
	}
	if len(dead) == 0 {
		return
	}
	h.mu.Lock()
	for _, conn := range dead {
		delete(h.viewers, conn)
		conn.Close()
	}
	h.mu.Unlock()
}

// handleControl runs one command session: every text message is a command
// line, every reply comes back as a text message on the same socket.
func (h *Hub) handleControl(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.log.Info().Str("remote", r.RemoteAddr).Msg("control client connected")

	var wmu sync.Mutex
	reply := func(s string) {
		wmu.Lock()
		defer wmu.Unlock()
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(s))
	}

	defer func() {
		conn.Close()
		h.log.Info().Str("remote", r.RemoteAddr).Msg("control client disconnected")
	}()
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.requests <- render.Request{Line: string(msg), Reply: reply}
	}
}

func (h *Hub) handleFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := h.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.viewers[conn] = true
	h.mu.Unlock()

	// drain (and discard) client messages to notice disconnects
	go func() {
		defer func() {
			h.mu.Lock()
			delete(h.viewers, conn)
			h.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	n := len(h.viewers)
	id := h.frameID
	h.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"viewers": n,
		"frames":  id,
	})
}
