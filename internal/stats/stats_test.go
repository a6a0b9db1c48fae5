package stats

import (
	"math"
	"testing"
	"time"

	"backend-stridehub/internal/workout"
)

func day(now time.Time, daysAgo int) time.Time {
	return now.AddDate(0, 0, -daysAgo)
}

func TestComputeEmptyIsNil(t *testing.T) {
	if Compute(nil, workout.PeriodAll, time.Now()) != nil {
		t.Fatalf("empty set must yield nil, not zero-filled totals")
	}
}

func TestComputeEmptyAfterFilterIsNil(t *testing.T) {
	now := time.Now()
	old := []workout.Workout{{StartedAt: day(now, 400), DistanceM: 5000, DurationSec: 1800}}
	if Compute(old, workout.PeriodWeek, now) != nil {
		t.Fatalf("filtered-out set must yield nil")
	}
}

func TestComputeTotalsAndRecords(t *testing.T) {
	now := time.Now()
	workouts := []workout.Workout{
		{StartedAt: day(now, 0), DistanceM: 5000, DurationSec: 1500}, // 300 s/km
		{StartedAt: day(now, 1), DistanceM: 10000, DurationSec: 3600},
		{StartedAt: day(now, 2), DistanceM: 0, DurationSec: 600}, // excluded from pace
	}

	s := Compute(workouts, workout.PeriodAll, now)
	if s == nil {
		t.Fatalf("expected summary")
	}
	if s.TotalDistanceM != 15000 || s.TotalDurationSec != 5700 || s.WorkoutCount != 3 {
		t.Fatalf("unexpected totals: %+v", s)
	}
	if s.LongestDistanceM != 10000 {
		t.Fatalf("unexpected longest distance: %v", s.LongestDistanceM)
	}
	if s.FastestPaceSecPerKm == nil || math.Abs(*s.FastestPaceSecPerKm-300) > 1e-9 {
		t.Fatalf("unexpected fastest pace: %v", s.FastestPaceSecPerKm)
	}
}

func TestFastestPaceNilWhenNoEligibleWorkout(t *testing.T) {
	now := time.Now()
	workouts := []workout.Workout{
		{StartedAt: now, DistanceM: 0, DurationSec: 600},
		{StartedAt: now, DistanceM: 3000, DurationSec: 0},
	}
	s := Compute(workouts, workout.PeriodAll, now)
	if s.FastestPaceSecPerKm != nil {
		t.Fatalf("expected nil pace, got %v", *s.FastestPaceSecPerKm)
	}
}

func TestPeriodFilter(t *testing.T) {
	now := time.Now()
	workouts := []workout.Workout{
		{StartedAt: day(now, 1), DistanceM: 5000, DurationSec: 1800},
		{StartedAt: day(now, 20), DistanceM: 7000, DurationSec: 2400},
	}

	s := Compute(workouts, workout.PeriodWeek, now)
	if s.WorkoutCount != 1 || s.TotalDistanceM != 5000 {
		t.Fatalf("week filter failed: %+v", s)
	}

	s = Compute(workouts, workout.PeriodMonth, now)
	if s.WorkoutCount != 2 {
		t.Fatalf("month filter failed: %+v", s)
	}
}

func TestDailyBucketsSortedAscending(t *testing.T) {
	now := time.Now()
	workouts := []workout.Workout{
		{StartedAt: day(now, 0), DistanceM: 3000, DurationSec: 900},
		{StartedAt: day(now, 2), DistanceM: 5000, DurationSec: 1500},
		{StartedAt: day(now, 0), DistanceM: 2000, DurationSec: 600},
	}

	s := Compute(workouts, workout.PeriodAll, now)
	if len(s.Daily) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(s.Daily))
	}
	if s.Daily[0].Date >= s.Daily[1].Date {
		t.Fatalf("buckets not ascending: %+v", s.Daily)
	}
	today := s.Daily[1]
	if today.Count != 2 || today.DistanceM != 5000 || today.DurationSec != 1500 {
		t.Fatalf("today's bucket wrong: %+v", today)
	}
}

func TestStreakAnchoredAtToday(t *testing.T) {
	now := time.Now()

	// Workouts on T-2 and T-3 only: streak is 0, not 2.
	gap := []workout.Workout{
		{StartedAt: day(now, 2), DistanceM: 1000, DurationSec: 300},
		{StartedAt: day(now, 3), DistanceM: 1000, DurationSec: 300},
	}
	if s := Compute(gap, workout.PeriodAll, now); s.CurrentStreak != 0 {
		t.Fatalf("expected streak 0 with gap at today, got %d", s.CurrentStreak)
	}

	// Today, yesterday, T-2: streak 3.
	run := []workout.Workout{
		{StartedAt: day(now, 0), DistanceM: 1000, DurationSec: 300},
		{StartedAt: day(now, 1), DistanceM: 1000, DurationSec: 300},
		{StartedAt: day(now, 2), DistanceM: 1000, DurationSec: 300},
		{StartedAt: day(now, 4), DistanceM: 1000, DurationSec: 300},
	}
	s := Compute(run, workout.PeriodAll, now)
	if s.CurrentStreak != 3 {
		t.Fatalf("expected streak 3, got %d", s.CurrentStreak)
	}
	if s.LongestStreak != s.CurrentStreak {
		t.Fatalf("longest streak is documented to equal current")
	}
}
