package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/cwbudde/inkshape/internal/engine"
)

// Session is one independent canvas plus its recognition engine. The JSON
// view carries metadata only; the engine is reached through the service.
type Session struct {
	ID         string     `json:"id"`
	Mode       string     `json:"mode"`
	Strategy   string     `json:"strategy"`
	CreatedAt  time.Time  `json:"createdAt"`
	LastResult *ResultDTO `json:"lastResult,omitempty"`

	svc *engine.Service
}

// ResultDTO is the wire form of a recognition result.
type ResultDTO struct {
	Label      string    `json:"label"`
	Confidence uint8     `json:"confidence"`
	Empty      bool      `json:"empty"`
	PixelCount int       `json:"pixelCount"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Timestamp  time.Time `json:"timestamp"`
}

func toDTO(r engine.Result) *ResultDTO {
	dto := &ResultDTO{
		Label:      r.Label(),
		Confidence: r.Confidence,
		Empty:      r.Features.Empty,
		PixelCount: r.Features.PixelCount,
		Timestamp:  time.Now(),
	}
	// The bbox is a pre-scan sentinel when no ink was seen.
	if !dto.Empty {
		dto.Width = r.Features.BBox.Width()
		dto.Height = r.Features.BBox.Height()
	}
	return dto
}

// SessionConfig is the create-session request body.
type SessionConfig struct {
	Mode     string `json:"mode"`     // "shape" (default) or "digit"
	Strategy string `json:"strategy"` // "filled" (default) or "outline"
}

// SessionManager owns all live sessions.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	broadcaster *EventBroadcaster
}

// NewSessionManager creates an empty manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		broadcaster: NewEventBroadcaster(),
	}
}

// CreateSession builds a session from the config and returns a value
// snapshot of its metadata.
func (sm *SessionManager) CreateSession(cfg SessionConfig) (Session, error) {
	mode, err := engine.ParseMode(cfg.Mode)
	if err != nil {
		return Session{}, err
	}

	var cls *classify.GeomClassifier
	switch cfg.Strategy {
	case "", "filled":
		cfg.Strategy = "filled"
		cls = classify.NewFilledClassifier()
	case "outline":
		cls = classify.NewOutlineClassifier()
	default:
		return Session{}, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	session := &Session{
		ID:        uuid.New().String(),
		Mode:      mode.String(),
		Strategy:  cfg.Strategy,
		CreatedAt: time.Now(),
		svc:       engine.NewService(engine.Config{Mode: mode, Classifier: cls}),
	}
	sm.sessions[session.ID] = session
	return *session, nil
}

// GetSession retrieves a session by ID. The pointer is for reaching the
// session's service; handlers that serialize session metadata must take a
// View instead, since LastResult is updated under the manager lock.
func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	return s, ok
}

// View returns a copy of one session's metadata taken under the manager
// lock, safe to encode while recognitions keep updating the original.
func (sm *SessionManager) View(id string) (Session, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	s, ok := sm.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Views returns metadata copies of all live sessions.
func (sm *SessionManager) Views() []Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	out := make([]Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		out = append(out, *s)
	}
	return out
}

// DeleteSession removes a session and its event subscribers.
func (sm *SessionManager) DeleteSession(id string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, ok := sm.sessions[id]; !ok {
		return false
	}
	delete(sm.sessions, id)
	sm.broadcaster.CleanupSession(id)
	return true
}

// setLastResult records the most recent recognition verdict on the session
// so listings and new SSE subscribers see it.
func (sm *SessionManager) setLastResult(id string, dto *ResultDTO) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if s, ok := sm.sessions[id]; ok {
		s.LastResult = dto
	}
}
