package source

import (
	"sync"
	"time"

	"backend-stridehub/internal/track"
)

// EmitFunc receives each normalized reading a source produces. Sources call
// it from a single goroutine, in production order.
type EmitFunc func(track.Reading)

// Source produces position readings at a cadence. Start is one-shot; Stop
// is idempotent and guarantees that no reading is delivered after it
// returns.
type Source interface {
	Start(emit EmitFunc) error
	Stop()
	Active() bool
}

const DefaultUpdateInterval = time.Second

// Options configures a synthetic source. Zero values fall back to
// sensible defaults per source type.
type Options struct {
	SpeedKmh       float64       `json:"speed_kmh"`
	UpdateInterval time.Duration `json:"-"`
	JitterMeters   float64       `json:"jitter_meters"`
	StartLat       float64       `json:"start_lat"`
	StartLng       float64       `json:"start_lng"`
	Route          string        `json:"route"`
}

// runner owns the tick loop shared by both simulator variants. step is
// invoked once per tick and returns the reading to emit plus false when
// the source has exhausted itself (waypoint routes stop at the last
// waypoint).
type runner struct {
	interval time.Duration

	mu      sync.Mutex
	active  bool
	stopped chan struct{}
	done    chan struct{}
}

func (r *runner) start(step func() (track.Reading, bool), emit EmitFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return ErrAlreadyStarted
	}
	if r.interval <= 0 {
		r.interval = DefaultUpdateInterval
	}
	r.active = true
	r.stopped = make(chan struct{})
	r.done = make(chan struct{})

	go func() {
		defer close(r.done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stopped:
				return
			case <-ticker.C:
				reading, more := step()
				select {
				case <-r.stopped:
					return
				default:
				}
				emit(reading)
				if !more {
					r.markInactive()
					return
				}
			}
		}
	}()
	return nil
}

// stop halts the loop and waits for the emitting goroutine to exit, so no
// reading can arrive after it returns. Safe to call repeatedly.
func (r *runner) stop() {
	r.mu.Lock()
	if r.stopped == nil {
		r.mu.Unlock()
		return
	}
	select {
	case <-r.stopped:
	default:
		close(r.stopped)
	}
	r.active = false
	done := r.done
	r.mu.Unlock()

	<-done
}

func (r *runner) markInactive() {
	r.mu.Lock()
	r.active = false
	r.mu.Unlock()
}

func (r *runner) isActive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}
