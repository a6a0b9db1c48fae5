package geo

import "math"

const earthRadiusM = 6371000

// Meters-per-degree approximations used by the simulators. Good enough at
// city scale; the longitude factor is corrected by cos(lat) at the call
// site in Project.
const (
	degPerMeterLat = 1.0 / 111000.0
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Haversine returns the great-circle distance in meters between two
// coordinates given in degrees. No ellipsoid correction. NaN inputs
// propagate as NaN.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// Bearing returns the initial bearing in degrees (0-360) from the first
// point toward the second, using the same planar approximation as Project.
func Bearing(from, to Point) float64 {
	deg := math.Atan2(to.Lng-from.Lng, to.Lat-from.Lat) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Project moves a point the given distance in meters along a heading in
// degrees, using a planar meters-to-degrees approximation rather than a
// full geodesic inversion. Acceptable at the distances a single simulator
// tick covers.
func Project(p Point, headingDeg, meters float64) Point {
	rad := headingDeg * math.Pi / 180
	latStep := math.Cos(rad) * meters * degPerMeterLat
	lngStep := math.Sin(rad) * meters * degPerMeterLat / math.Cos(p.Lat*math.Pi/180)
	return Point{Lat: p.Lat + latStep, Lng: p.Lng + lngStep}
}

// PlanarDistance approximates the distance in meters between two nearby
// points without trigonometric inversion. Used by the waypoint simulator
// to decide when a target has been reached.
func PlanarDistance(a, b Point) float64 {
	latM := (b.Lat - a.Lat) * 111000
	lngM := (b.Lng - a.Lng) * 111000 * math.Cos(a.Lat*math.Pi/180)
	return math.Sqrt(latM*latM + lngM*lngM)
}
