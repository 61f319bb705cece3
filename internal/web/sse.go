package web

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// sseHeartbeatInterval keeps intermediaries from closing idle streams.
const sseHeartbeatInterval = 25 * time.Second

// handleEvents streams committed record updates as Server-Sent Events so
// every open page converges on the latest saved value without polling.
func (h handlers) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	updates, cancel := h.service.Watch(r.Context())
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	ticker := time.NewTicker(sseHeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case details, open := <-updates:
			if !open {
				return
			}
			data, err := json.Marshal(details)
			if err != nil {
				log.Printf("marshal details event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: details\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
