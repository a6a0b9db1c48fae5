package track

import (
	"log"

	"backend-stridehub/internal/shared/geo"
)

const (
	DefaultMaxAccuracyM = 30
	DefaultMinMoveM     = 1
)

// Accumulator gates incoming readings into a route polyline and maintains
// the cumulative distance incrementally. A reading must pass the accuracy
// gate and, except for the very first point, move at least the minimum
// distance from the last accepted point. Rejections are silent.
type Accumulator struct {
	maxAccuracyM float64
	minMoveM     float64

	points    []Reading
	distanceM float64
}

func NewAccumulator(maxAccuracyM, minMoveM float64) *Accumulator {
	if maxAccuracyM <= 0 {
		maxAccuracyM = DefaultMaxAccuracyM
	}
	if minMoveM <= 0 {
		minMoveM = DefaultMinMoveM
	}
	return &Accumulator{maxAccuracyM: maxAccuracyM, minMoveM: minMoveM}
}

// Offer decides whether the reading joins the route. It reports true when
// the point was appended. The first accepted point is exempt from the
// movement gate; nothing seeds distance until a second point lands.
func (a *Accumulator) Offer(r Reading) bool {
	if r.AccuracyM > a.maxAccuracyM {
		log.Printf("track: rejected reading, accuracy %.1fm above %.1fm gate", r.AccuracyM, a.maxAccuracyM)
		return false
	}

	if len(a.points) == 0 {
		a.points = append(a.points, r)
		return true
	}

	last := a.points[len(a.points)-1]
	d := geo.Haversine(last.Lat, last.Lng, r.Lat, r.Lng)
	if d < a.minMoveM {
		log.Printf("track: rejected reading, moved %.2fm below %.2fm gate", d, a.minMoveM)
		return false
	}

	a.points = append(a.points, r)
	a.distanceM += d
	return true
}

// DistanceM is the cumulative distance over accepted points.
func (a *Accumulator) DistanceM() float64 {
	return a.distanceM
}

// Points returns a copy of the accepted route in insertion order.
func (a *Accumulator) Points() []Reading {
	out := make([]Reading, len(a.points))
	copy(out, a.points)
	return out
}

// Last returns the most recently accepted point, or false when the route
// is still empty.
func (a *Accumulator) Last() (Reading, bool) {
	if len(a.points) == 0 {
		return Reading{}, false
	}
	return a.points[len(a.points)-1], true
}

func (a *Accumulator) Len() int {
	return len(a.points)
}

// Reset clears the route and distance for a fresh session.
func (a *Accumulator) Reset() {
	a.points = nil
	a.distanceM = 0
}
