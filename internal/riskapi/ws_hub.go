package riskapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// RunEvent is a progress notification pushed to subscribers of a run's
// WebSocket topic: "started" when a computation begins, "completed"
// when it finishes (with Var/ES populated), or "failed" with an error
// message. The Monte-Carlo core itself exposes no progress callback
// (its worker-pool hot path takes no mutex and makes no cooperative
// checkpoint), so completion, not per-path progress, is what this
// hub actually has to broadcast.
type RunEvent struct {
	RunID  string  `json:"run_id"`
	Status string  `json:"status"`
	VaR    float64 `json:"var,omitempty"`
	ES     float64 `json:"es,omitempty"`
	Err    string  `json:"error,omitempty"`
}

// RunHub fans out RunEvents to WebSocket subscribers of a run ID.
type RunHub struct {
	mu     sync.RWMutex
	subs   map[string]map[*websocket.Conn]bool
	events chan topicEvent
}

type topicEvent struct {
	runID string
	data  []byte
}

// NewRunHub constructs an idle hub; call Run in a goroutine to start
// its event loop.
func NewRunHub() *RunHub {
	return &RunHub{
		subs:   make(map[string]map[*websocket.Conn]bool),
		events: make(chan topicEvent, 256),
	}
}

// Run drives the hub's broadcast loop. Must run in its own goroutine.
func (h *RunHub) Run() {
	for evt := range h.events {
		h.mu.RLock()
		conns := h.subs[evt.runID]
		for conn := range conns {
			if err := conn.WriteMessage(websocket.TextMessage, evt.data); err != nil {
				conn.Close()
			}
		}
		h.mu.RUnlock()
	}
}

// Publish broadcasts evt to every subscriber of its run ID.
func (h *RunHub) Publish(evt RunEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case h.events <- topicEvent{runID: evt.RunID, data: data}:
	default:
		slog.Warn("riskapi: run hub event buffer full, dropping event", "run_id", evt.RunID)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

// HandleWS upgrades GET /v1/runs/{run_id}/ws and subscribes the
// connection to that run's events until it disconnects.
func (h *RunHub) HandleWS(runID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("riskapi: ws upgrade failed", "err", err)
			return
		}
		h.subscribe(runID, conn)
		wsClients.Inc()

		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.unsubscribe(runID, conn)
		wsClients.Dec()
	}
}

func (h *RunHub) subscribe(runID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[runID] == nil {
		h.subs[runID] = make(map[*websocket.Conn]bool)
	}
	h.subs[runID][conn] = true
}

func (h *RunHub) unsubscribe(runID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[runID], conn)
	conn.Close()
}
