package metrics

import "math"

// Heart-rate training zones derived from maximum heart rate. Boundaries
// follow the common 65/75/85/95 percent splits.
type ZoneRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Zones struct {
	Recovery  ZoneRange `json:"recovery"`
	Aerobic   ZoneRange `json:"aerobic"`
	Tempo     ZoneRange `json:"tempo"`
	Threshold ZoneRange `json:"threshold"`
	Anaerobic ZoneRange `json:"anaerobic"`
}

func ZonesFromMax(maxHeartRate int) Zones {
	if maxHeartRate <= 0 {
		maxHeartRate = 190
	}
	pct := func(p float64) int {
		return int(math.Round(float64(maxHeartRate) * p))
	}
	return Zones{
		Recovery:  ZoneRange{Min: 0, Max: pct(0.65)},
		Aerobic:   ZoneRange{Min: pct(0.65) + 1, Max: pct(0.75)},
		Tempo:     ZoneRange{Min: pct(0.75) + 1, Max: pct(0.85)},
		Threshold: ZoneRange{Min: pct(0.85) + 1, Max: pct(0.95)},
		Anaerobic: ZoneRange{Min: pct(0.95) + 1, Max: maxHeartRate},
	}
}

// ZoneFor names the zone a heart rate falls into, or "unknown" when the
// rate is outside every range.
func (z Zones) ZoneFor(bpm int) string {
	switch {
	case bpm <= 0:
		return "unknown"
	case bpm <= z.Recovery.Max:
		return "recovery"
	case bpm <= z.Aerobic.Max:
		return "aerobic"
	case bpm <= z.Tempo.Max:
		return "tempo"
	case bpm <= z.Threshold.Max:
		return "threshold"
	case bpm <= z.Anaerobic.Max:
		return "anaerobic"
	default:
		return "unknown"
	}
}

// Profile carries the runner attributes calorie and zone math needs.
type Profile struct {
	WeightKg     float64 `json:"weight_kg"`
	Age          int     `json:"age"`
	Sex          string  `json:"sex"`
	MaxHeartRate int     `json:"max_heart_rate"`
}
