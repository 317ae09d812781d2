package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ResultEvent is one recognition verdict pushed to SSE subscribers.
type ResultEvent struct {
	SessionID  string    `json:"sessionId"`
	Label      string    `json:"label"`
	Confidence uint8     `json:"confidence"`
	Empty      bool      `json:"empty"`
	Timestamp  time.Time `json:"timestamp"`
}

// EventBroadcaster fans recognition events out to SSE clients per session.
type EventBroadcaster struct {
	mu        sync.RWMutex
	clients   map[string]map[chan ResultEvent]bool // sessionID -> client channels
	lastEvent map[string]ResultEvent               // sessionID -> last event for new clients
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster() *EventBroadcaster {
	return &EventBroadcaster{
		clients:   make(map[string]map[chan ResultEvent]bool),
		lastEvent: make(map[string]ResultEvent),
	}
}

// Subscribe adds a client to receive events for a session.
func (eb *EventBroadcaster) Subscribe(sessionID string) chan ResultEvent {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan ResultEvent, 10) // buffered to prevent blocking

	if eb.clients[sessionID] == nil {
		eb.clients[sessionID] = make(map[chan ResultEvent]bool)
	}
	eb.clients[sessionID][ch] = true

	// Replay the last verdict so reconnecting clients catch up.
	if last, ok := eb.lastEvent[sessionID]; ok {
		select {
		case ch <- last:
		default:
		}
	}

	slog.Debug("SSE client subscribed", "sessionID", sessionID, "total_clients", len(eb.clients[sessionID]))
	return ch
}

// Unsubscribe removes a client from receiving events.
func (eb *EventBroadcaster) Unsubscribe(sessionID string, ch chan ResultEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if clients, ok := eb.clients[sessionID]; ok {
		delete(clients, ch)
		close(ch)

		if len(clients) == 0 {
			delete(eb.clients, sessionID)
		}
	}

	slog.Debug("SSE client unsubscribed", "sessionID", sessionID)
}

// Broadcast sends an event to all subscribed clients for a session.
func (eb *EventBroadcaster) Broadcast(event ResultEvent) {
	eb.mu.Lock()
	eb.lastEvent[event.SessionID] = event
	eb.mu.Unlock()

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	clients, ok := eb.clients[event.SessionID]
	if !ok || len(clients) == 0 {
		return
	}

	slog.Debug("Broadcasting event", "sessionID", event.SessionID, "clients", len(clients), "label", event.Label)

	for ch := range clients {
		select {
		case ch <- event:
		default:
			// Channel full, skip this client so a slow reader never
			// blocks the recognize handler.
			slog.Warn("SSE channel full, skipping event", "sessionID", event.SessionID)
		}
	}
}

// CleanupSession removes all clients and cached events for a session.
func (eb *EventBroadcaster) CleanupSession(sessionID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if clients, ok := eb.clients[sessionID]; ok {
		for ch := range clients {
			close(ch)
		}
		delete(eb.clients, sessionID)
	}

	delete(eb.lastEvent, sessionID)
	slog.Debug("Cleaned up SSE resources", "sessionID", sessionID)
}

// handleSessionStream handles SSE connections for recognition results.
func (s *Server) handleSessionStream(w http.ResponseWriter, r *http.Request, sessionID string) {
	view, exists := s.sessions.View(sessionID)
	if !exists {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	eventChan := s.sessions.broadcaster.Subscribe(sessionID)
	defer s.sessions.broadcaster.Unsubscribe(sessionID, eventChan)

	// Initial event: the last known verdict, or a blank one for a fresh
	// session.
	initial := ResultEvent{SessionID: view.ID, Label: "none", Timestamp: time.Now()}
	if view.LastResult != nil {
		initial.Label = view.LastResult.Label
		initial.Confidence = view.LastResult.Confidence
		initial.Empty = view.LastResult.Empty
	}

	if err := writeSSEEvent(w, initial); err != nil {
		slog.Error("Failed to write initial SSE event", "error", err)
		return
	}
	flusher.Flush()

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			slog.Debug("SSE client disconnected", "sessionID", sessionID)
			return

		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if err := writeSSEEvent(w, event); err != nil {
				slog.Error("Failed to write SSE event", "error", err)
				return
			}
			flusher.Flush()

		case <-pingTicker.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		}
	}
}

// writeSSEEvent writes an event in SSE format.
func writeSSEEvent(w http.ResponseWriter, event ResultEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// SSE format: "data: {json}\n\n"
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}
