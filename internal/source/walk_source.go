package source

import (
	"math/rand"
	"sync"
	"time"

	"backend-stridehub/internal/shared/geo"
	"backend-stridehub/internal/track"
)

// Default start position for the random walk (London).
const (
	defaultWalkLat = 51.5074
	defaultWalkLng = -0.1278
)

// WalkSource random-walks from a start point at a configured speed with
// heading jitter and optional positional noise. It runs until stopped.
type WalkSource struct {
	speedMps     float64
	jitterMeters float64
	runner       runner

	mu      sync.Mutex
	current geo.Point
	heading float64
	alt     float64
}

func NewWalkSource(opts Options) *WalkSource {
	speed := opts.SpeedKmh / 3.6
	if speed <= 0 {
		speed = 3 // jogging pace
	}
	start := geo.Point{Lat: opts.StartLat, Lng: opts.StartLng}
	if start.Lat == 0 && start.Lng == 0 {
		start = geo.Point{Lat: defaultWalkLat, Lng: defaultWalkLng}
	}
	return &WalkSource{
		speedMps:     speed,
		jitterMeters: opts.JitterMeters,
		runner:       runner{interval: opts.UpdateInterval},
		current:      start,
		heading:      rand.Float64() * 360,
		alt:          10 + rand.Float64()*5,
	}
}

func (s *WalkSource) Start(emit EmitFunc) error {
	return s.runner.start(s.step, emit)
}

func (s *WalkSource) Stop() {
	s.runner.stop()
}

func (s *WalkSource) Active() bool {
	return s.runner.isActive()
}

func (s *WalkSource) step() (track.Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	travel := s.speedMps * s.runner.interval.Seconds()
	s.current = geo.Project(s.current, s.heading, travel)

	if s.jitterMeters > 0 {
		jitterHeading := rand.Float64() * 360
		s.current = geo.Project(s.current, jitterHeading, (rand.Float64()-0.5)*s.jitterMeters)
	}

	// Drift the heading up to +-15 degrees per tick for natural curves.
	s.heading += (rand.Float64() - 0.5) * 30
	for s.heading < 0 {
		s.heading += 360
	}
	for s.heading >= 360 {
		s.heading -= 360
	}

	s.alt += (rand.Float64() - 0.5) * 2
	accuracy := 5 + rand.Float64()*5
	speed := s.speedMps + (rand.Float64() - 0.5)
	heading := s.heading
	alt := s.alt
	return track.Reading{
		Lat:        s.current.Lat,
		Lng:        s.current.Lng,
		AccuracyM:  accuracy,
		AltitudeM:  &alt,
		HeadingDeg: &heading,
		SpeedMps:   &speed,
		RecordedAt: time.Now(),
	}, true
}
