/* handlers.go
 * Contains the HTTP handlers for the pool snapshot endpoint and the results
 * feed webhook
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"log"
	"net/http"
)

// ResultsEvent is the webhook payload sent by the results feed when a week's
// data changes
type ResultsEvent struct {
	Pool  string `json:"pool"`
	Week  int    `json:"week"`
	Event string `json:"event"`
}

// PoolHandler serves the pool snapshot as JSON. Reads are cached, a fresh
// snapshot is only computed when the cached one has aged out
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: Writes the snapshot JSON, or an error status
func (s *Server) PoolHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snapshot, err := s.api.GetPoolSnapshot()
	if err != nil {
		log.Println("pool snapshot failed:", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Println("failed to encode snapshot:", err)
	}
}

// ResultsWebhookHandler HTTP endpoint that receives a webhook from the results
// feed, used to drop the cached snapshot and kick off a recompute
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request
// Postconditions: The cached snapshot is invalidated and a recompute is started
func (s *Server) ResultsWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	var event ResultsEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Println("failed to decode webhook:", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// Events for other pools are acknowledged and ignored
	if event.Pool != s.api.Store.GetPool() {
		w.WriteHeader(http.StatusOK)
		return
	}

	log.Printf("results event pool=%s week=%d event=%s\n", event.Pool, event.Week, event.Event)

	s.api.Cache.Invalidate()

	// Kick async recompute so the next read is served warm
	go func() {
		if _, err := s.api.GetPoolSnapshot(); err != nil {
			log.Println("snapshot recompute failed:", err)
		}
	}()

	w.WriteHeader(http.StatusOK)
}
