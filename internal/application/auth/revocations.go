package auth

import (
	"sync"
	"time"
)

// revocations tokens cerrados por logout antes de su vencimiento, indexados por jti.
// Una entrada vive hasta que el token vencería por sí solo.
type revocations struct {
	mu   sync.Mutex
	byID map[string]time.Time
	now  func() time.Time
}

func newRevocations() *revocations {
	return &revocations{byID: make(map[string]time.Time), now: time.Now}
}

// revoke marca el token y aprovecha para podar las entradas ya vencidas.
func (r *revocations) revoke(id string, exp time.Time) {
	if id == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, e := range r.byID {
		if !e.After(now) {
			delete(r.byID, k)
		}
	}
	r.byID[id] = exp
}

func (r *revocations) revoked(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byID[id]
	return ok
}
