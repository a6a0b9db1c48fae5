package session

import (
	"time"

	"backend-stridehub/internal/track"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

type HeartRateSample struct {
	BPM        int       `json:"bpm"`
	CapturedAt time.Time `json:"captured_at"`
}

// Run is the transient active-workout state. At most one exists at a
// time. External callers only ever see deep copies; all mutation goes
// through the Manager.
type Run struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	StartedAt        time.Time         `json:"started_at"`
	Status           Status            `json:"status"`
	Route            []track.Reading   `json:"route"`
	HeartRate        []HeartRateSample `json:"heart_rate"`
	DistanceM        float64           `json:"distance_m"`
	DurationSec      int64             `json:"duration_sec"`
	CurrentHeartRate int               `json:"current_heart_rate"`
}

func (r *Run) clone() *Run {
	out := *r
	out.Route = make([]track.Reading, len(r.Route))
	copy(out.Route, r.Route)
	out.HeartRate = make([]HeartRateSample, len(r.HeartRate))
	copy(out.HeartRate, r.HeartRate)
	return &out
}
