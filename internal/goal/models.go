package goal

import "time"

// Goal metric kinds.
const (
	KindDistance  = "distance"
	KindDuration  = "duration"
	KindFrequency = "frequency"
)

// Goal periods, calendar-aligned.
const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

type Goal struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Period    string    `json:"period"`
	Target    float64   `json:"target"`
	CreatedAt time.Time `json:"created_at"`
	// Completed is a one-way latch: once true it stays true even if
	// progress later drops below target.
	Completed bool `json:"completed"`
}

type Achievement struct {
	ID         string    `json:"id"`
	GoalID     string    `json:"goal_id"`
	Kind       string    `json:"kind"`
	Value      float64   `json:"value"`
	Period     string    `json:"period"`
	AchievedAt time.Time `json:"achieved_at"`
}

type Progress struct {
	Value     float64 `json:"value"`
	Target    float64 `json:"target"`
	Percent   int     `json:"percent"`
	Completed bool    `json:"completed"`
}

func validKind(k string) bool {
	return k == KindDistance || k == KindDuration || k == KindFrequency
}

func validPeriod(p string) bool {
	return p == PeriodWeekly || p == PeriodMonthly || p == PeriodYearly
}

// periodStart returns the beginning of the current calendar window in
// local time: Sunday for weekly, the 1st for monthly, Jan 1 for yearly.
func periodStart(period string, now time.Time) time.Time {
	now = now.Local()
	switch period {
	case PeriodWeekly:
		start := now.AddDate(0, 0, -int(now.Weekday()))
		return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	case PeriodMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case PeriodYearly:
		return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}
	}
}
