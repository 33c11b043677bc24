package proxy

import (
	"sync"

	"github.com/voluntree-lab/backend/internal/domain/notification/event"
)

// UserHub fans one recipient's events out to every open session of that
// recipient (multiple tabs, devices).
type UserHub struct {
	userID   string
	sessions map[string]*UserSession

	mutex sync.RWMutex
}

func NewUserHub(userID string) *UserHub {
	return &UserHub{
		userID:   userID,
		sessions: make(map[string]*UserSession),
	}
}

// Send never blocks. A session whose buffer is full loses the pack; it
// recovers the row from the cold-start snapshot on its next connect.
func (h *UserHub) Send(ev *event.EventRequest) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, s := range h.sessions {
		select {
		case s.C <- ev:
		default:
		}
	}
}

func (h *UserHub) register(session *UserSession) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.sessions[session.id]; !ok {
		h.sessions[session.id] = session
	}
}

func (h *UserHub) unregister(session *UserSession) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	delete(h.sessions, session.id)
}

func (h *UserHub) IsEmpty() bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.sessions) == 0
}
