package source

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"backend-stridehub/internal/shared/geo"
	"backend-stridehub/internal/track"
)

var (
	ErrAlreadyStarted = errors.New("source already started")
	ErrUnknownRoute   = errors.New("unknown preset route")
)

// RouteSource replays a preset waypoint path at a configured speed,
// interpolating between waypoints each tick. It stops itself upon
// reaching the final waypoint.
type RouteSource struct {
	route    PresetRoute
	speedKmh float64
	runner   runner

	mu      sync.Mutex
	current geo.Point
	nextIdx int
}

func NewRouteSource(opts Options) (*RouteSource, error) {
	route, ok := RouteByKey(opts.Route)
	if !ok || len(route.Path) < 2 {
		return nil, ErrUnknownRoute
	}
	speed := opts.SpeedKmh
	if speed <= 0 {
		speed = 10
	}
	return &RouteSource{
		route:    route,
		speedKmh: speed,
		runner:   runner{interval: opts.UpdateInterval},
		current:  route.Path[0],
		nextIdx:  1,
	}, nil
}

func (s *RouteSource) Start(emit EmitFunc) error {
	return s.runner.start(s.step, emit)
}

func (s *RouteSource) Stop() {
	s.runner.stop()
}

func (s *RouteSource) Active() bool {
	return s.runner.isActive()
}

func (s *RouteSource) step() (track.Reading, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Small speed fluctuation for realism, +-0.8 km/h.
	speedKmh := s.speedKmh + (rand.Float64()-0.5)*1.6
	speedMps := speedKmh / 3.6
	travel := speedMps * s.runner.interval.Seconds()

	target := s.route.Path[s.nextIdx]
	remaining := geo.PlanarDistance(s.current, target)

	heading := geo.Bearing(s.current, target)

	if travel >= remaining {
		s.current = target
		s.nextIdx++
	} else {
		s.current = geo.Project(s.current, heading, travel)
	}

	altitude := 100 + rand.Float64()*2
	return track.Reading{
		Lat:        s.current.Lat,
		Lng:        s.current.Lng,
		AccuracyM:  5,
		AltitudeM:  &altitude,
		HeadingDeg: &heading,
		SpeedMps:   &speedMps,
		RecordedAt: time.Now(),
	}, s.nextIdx < len(s.route.Path)
}
