package source

import (
	"sync"

	"backend-stridehub/internal/track"
)

// Remote is the live-device variant of Source: readings arrive from the
// runner's device over the ingestion endpoint and are pushed through the
// same delivery path the simulators use. Push drops readings while the
// source is stopped, so nothing can reach a session after Stop returns.
type Remote struct {
	mu   sync.Mutex
	emit EmitFunc
}

func NewRemote() *Remote {
	return &Remote{}
}

func (r *Remote) Start(emit EmitFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emit != nil {
		return ErrAlreadyStarted
	}
	r.emit = emit
	return nil
}

func (r *Remote) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emit = nil
}

func (r *Remote) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.emit != nil
}

// Push delivers one device reading. Held under the same lock as Stop, so
// delivery and teardown cannot interleave.
func (r *Remote) Push(reading track.Reading) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emit == nil {
		return false
	}
	r.emit(reading)
	return true
}
