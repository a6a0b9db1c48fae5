package track

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidReading marks a raw sample that cannot be normalized. Callers
// drop these silently; they never reach the session.
var ErrInvalidReading = errors.New("invalid location reading")

// RawReading is the wire shape a device (or simulator) delivers. Optional
// fields stay nil when the platform did not report them.
type RawReading struct {
	Lat        *float64   `json:"lat"`
	Lng        *float64   `json:"lng"`
	AccuracyM  *float64   `json:"accuracy_m"`
	AltitudeM  *float64   `json:"altitude_m"`
	HeadingDeg *float64   `json:"heading_deg"`
	SpeedMps   *float64   `json:"speed_mps"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// Reading is a normalized position sample. Immutable once produced.
type Reading struct {
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	AccuracyM  float64   `json:"accuracy_m"`
	AltitudeM  *float64  `json:"altitude_m,omitempty"`
	HeadingDeg *float64  `json:"heading_deg,omitempty"`
	SpeedMps   *float64  `json:"speed_mps,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Normalize validates a raw sample and produces a Reading. Latitude,
// longitude and accuracy are required and must be finite; accuracy must be
// non-negative. A missing timestamp defaults to now. Optional fields are
// carried through untouched, never fabricated.
func Normalize(raw RawReading) (Reading, error) {
	if !finite(raw.Lat) || !finite(raw.Lng) || !finite(raw.AccuracyM) {
		return Reading{}, ErrInvalidReading
	}
	if *raw.Lat < -90 || *raw.Lat > 90 || *raw.Lng < -180 || *raw.Lng > 180 {
		return Reading{}, ErrInvalidReading
	}
	if *raw.AccuracyM < 0 {
		return Reading{}, ErrInvalidReading
	}

	r := Reading{
		Lat:        *raw.Lat,
		Lng:        *raw.Lng,
		AccuracyM:  *raw.AccuracyM,
		AltitudeM:  raw.AltitudeM,
		HeadingDeg: raw.HeadingDeg,
		RecordedAt: time.Now(),
	}
	if raw.RecordedAt != nil && !raw.RecordedAt.IsZero() {
		r.RecordedAt = *raw.RecordedAt
	}
	// Browsers report -1 or null speed when unknown; keep only usable values.
	if raw.SpeedMps != nil && *raw.SpeedMps >= 0 && !math.IsNaN(*raw.SpeedMps) {
		r.SpeedMps = raw.SpeedMps
	}
	return r, nil
}

func finite(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}
