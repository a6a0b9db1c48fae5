package metrics

import (
	"fmt"
	"math"
)

const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"

	// Minutes needed to cover one distance unit at 1 m/s.
	minsPerKmAtUnitSpeed   = 16.6667 // 1000 / 60
	minsPerMileAtUnitSpeed = 26.8224 // 1609.34 / 60

	metersPerFoot = 3.28084
	metersPerMile = 1609.34
)

// NoPace is returned when pace cannot be derived from the given speed.
const NoPace = "--:--"

// Pace converts a speed in m/s into a "M:SS" minutes-per-kilometer (or
// per-mile) string. Zero, negative or NaN speed yields the NoPace sentinel.
func Pace(speedMps float64, units string) string {
	if speedMps <= 0 || math.IsNaN(speedMps) {
		return NoPace
	}

	minsPerUnit := minsPerKmAtUnitSpeed / speedMps
	if units == UnitsImperial {
		minsPerUnit = minsPerMileAtUnitSpeed / speedMps
	}

	mins := int(minsPerUnit)
	secs := int((minsPerUnit - float64(mins)) * 60)
	return fmt.Sprintf("%d:%02d", mins, secs)
}

// Calories estimates energy burned from heart rate using per-sex linear
// regressions over (heart rate, weight, age), scaled by duration. Missing
// weight, duration or heart rate yields 0. Never negative.
func Calories(weightKg, durationMin, avgHeartRate float64, sex string, age int) int {
	if weightKg <= 0 || durationMin <= 0 || avgHeartRate <= 0 {
		return 0
	}
	if age <= 0 {
		age = 30
	}

	var kcal float64
	if sex == "female" {
		kcal = ((0.4472 * avgHeartRate) - (0.1263 * weightKg) + (0.074 * float64(age)) - 20.4022) * (durationMin / 4.184)
	} else {
		kcal = ((0.6309 * avgHeartRate) + (0.1988 * weightKg) + (0.2017 * float64(age)) - 55.0969) * (durationMin / 4.184)
	}

	if kcal < 0 {
		return 0
	}
	return int(math.Round(kcal))
}

// FormatDistance renders meters for display, switching to km (or ft to mi)
// at the 1000-unit crossover.
func FormatDistance(meters float64, units string) string {
	if units == UnitsImperial {
		feet := meters * metersPerFoot
		if feet < 1000 {
			return fmt.Sprintf("%.0f ft", feet)
		}
		return fmt.Sprintf("%.2f mi", meters/metersPerMile)
	}
	if meters < 1000 {
		return fmt.Sprintf("%.0f m", meters)
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

// FormatDuration renders seconds as MM:SS, or HH:MM:SS from one hour up.
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "00:00"
	}
	hrs := seconds / 3600
	mins := (seconds % 3600) / 60
	secs := seconds % 60
	if hrs > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hrs, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
