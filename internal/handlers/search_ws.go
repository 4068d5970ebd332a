package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/everlog-app/everlog-backend/internal/services"
)

// searchUpgrader is the shared upgrader for live-search connections.
var searchUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// SearchClientMessage is what the dashboard sends over the socket: one
// frame per keystroke, plus pings to keep the connection alive.
type SearchClientMessage struct {
	Type  string `json:"type"` // "search", "ping"
	Query string `json:"query"`
	Sort  string `json:"sort,omitempty"`
}

// SearchResultsMessage is the single results frame pushed once input has
// been idle for the debounce delay.
type SearchResultsMessage struct {
	Type    string                   `json:"type"` // "results"
	Query   string                   `json:"query"`
	Sort    string                   `json:"sort"`
	Entries []map[string]interface{} `json:"entries"`
	Total   int                      `json:"total"`
}

// SearchSocket handles the dashboard's live search. Every keystroke frame
// cancels the pending filter and schedules a new one, so a burst of
// keystrokes produces exactly one results frame — for the latest input.
func (h *Handlers) SearchSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := searchUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	debouncer := services.NewDebouncer(h.SearchDebounce)
	defer debouncer.Stop()

	// The debounce timer fires on its own goroutine, so writes need a
	// lock against the reader loop's pong replies.
	var writeMu sync.Mutex
	writeJSON := func(v interface{}) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	conn.SetReadLimit(64 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))
		return nil
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(90 * time.Second))

		var msg SearchClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "ping":
			_ = writeJSON(map[string]string{"type": "pong"})

		case "search":
			query := msg.Query
			mode := services.ParseSortMode(msg.Sort)
			debouncer.Trigger(func() {
				entries := services.FilterEntries(h.Entries.Load(), query)
				services.SortEntries(entries, mode)

				result := make([]map[string]interface{}, 0, len(entries))
				for _, e := range entries {
					result = append(result, entryMap(e))
				}
				_ = writeJSON(SearchResultsMessage{
					Type:    "results",
					Query:   query,
					Sort:    string(mode),
					Entries: result,
					Total:   len(result),
				})
			})
		}
	}
}
