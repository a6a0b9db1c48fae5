package stats

import (
	"sort"
	"time"

	"backend-stridehub/internal/workout"
)

// Summary aggregates a set of finished workouts. A nil Summary means the
// filtered set was empty, which callers must distinguish from zero
// activity.
type Summary struct {
	TotalDistanceM   float64 `json:"total_distance_m"`
	TotalDurationSec int64   `json:"total_duration_sec"`
	WorkoutCount     int     `json:"workout_count"`

	// FastestPaceSecPerKm is nil when no workout has both positive
	// distance and duration.
	FastestPaceSecPerKm *float64 `json:"fastest_pace_sec_per_km"`
	LongestDistanceM    float64  `json:"longest_distance_m"`

	CurrentStreak int `json:"current_streak"`
	// LongestStreak is reported equal to CurrentStreak; true historical
	// tracking would need day-bucket coverage over all history, which the
	// tracker has never stored.
	LongestStreak int `json:"longest_streak"`

	Daily []DayBucket `json:"daily"`
}

// DayBucket aggregates one local calendar day, keyed by the workout
// start date.
type DayBucket struct {
	Date        string  `json:"date"`
	DistanceM   float64 `json:"distance_m"`
	DurationSec int64   `json:"duration_sec"`
	Count       int     `json:"count"`
}

const dayFormat = "2006-01-02"

// Compute aggregates the workouts that started within the period ending
// at now. Returns nil for an empty filtered set.
func Compute(workouts []workout.Workout, period string, now time.Time) *Summary {
	since := workout.PeriodStart(period, now)

	var filtered []workout.Workout
	for _, w := range workouts {
		if !w.StartedAt.Before(since) {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	s := &Summary{WorkoutCount: len(filtered)}
	buckets := map[string]*DayBucket{}
	for _, w := range filtered {
		s.TotalDistanceM += w.DistanceM
		s.TotalDurationSec += w.DurationSec
		if w.DistanceM > s.LongestDistanceM {
			s.LongestDistanceM = w.DistanceM
		}
		if w.DistanceM > 0 && w.DurationSec > 0 {
			pace := float64(w.DurationSec) / (w.DistanceM / 1000)
			if s.FastestPaceSecPerKm == nil || pace < *s.FastestPaceSecPerKm {
				s.FastestPaceSecPerKm = &pace
			}
		}

		day := w.StartedAt.Local().Format(dayFormat)
		b, ok := buckets[day]
		if !ok {
			b = &DayBucket{Date: day}
			buckets[day] = b
		}
		b.DistanceM += w.DistanceM
		b.DurationSec += w.DurationSec
		b.Count++
	}

	for _, b := range buckets {
		s.Daily = append(s.Daily, *b)
	}
	sort.Slice(s.Daily, func(i, j int) bool { return s.Daily[i].Date < s.Daily[j].Date })

	s.CurrentStreak = currentStreak(buckets, now)
	s.LongestStreak = s.CurrentStreak
	return s
}

// currentStreak counts consecutive covered days walking back from today.
// No workout today means streak zero regardless of yesterday.
func currentStreak(buckets map[string]*DayBucket, now time.Time) int {
	day := now.Local()
	streak := 0
	for {
		if _, ok := buckets[day.Format(dayFormat)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}
