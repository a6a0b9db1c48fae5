package workout

import (
	"time"

	"backend-stridehub/internal/track"
)

// MaxStoredRoutePoints caps the persisted polyline for storage-size
// control; the live session keeps the full route until finish.
const MaxStoredRoutePoints = 100

// Workout is the immutable record of a completed run. Rename is the only
// permitted mutation after creation.
type Workout struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	StartedAt    time.Time       `json:"started_at"`
	EndedAt      time.Time       `json:"ended_at"`
	DurationSec  int64           `json:"duration_sec"`
	DistanceM    float64         `json:"distance_m"`
	AvgHeartRate int             `json:"avg_heart_rate"`
	MaxHeartRate int             `json:"max_heart_rate"`
	Calories     int             `json:"calories"`
	Route        []track.Reading `json:"route"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Clone deep-copies the workout so callers can hold snapshots without
// aliasing the stored route.
func (w Workout) Clone() Workout {
	out := w
	if w.Route != nil {
		out.Route = make([]track.Reading, len(w.Route))
		copy(out.Route, w.Route)
	}
	return out
}
