package http

import (
	"log"
	"net/http"
)

// liveLeaderboard upgrades the request to a websocket and streams leaderboard
// snapshots: one on connect, then one after every score write for the subject.
func (h *Handler) liveLeaderboard(w http.ResponseWriter, r *http.Request) {
	subjectName := r.URL.Query().Get("subjectName")
	if subjectName == "" {
		http.Error(w, "missing subjectName", http.StatusBadRequest)
		return
	}

	updates, cancel, err := h.scores.Subscribe(r.Context(), subjectName)
	if err != nil {
		writeError(w, err)
		return
	}
	defer cancel()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	done := make(chan struct{})

	// The read loop only detects the client going away.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case board, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(board); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-done:
			return
		}
	}
}
