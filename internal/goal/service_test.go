package goal

import (
	"context"
	"testing"
	"time"

	"backend-stridehub/internal/workout"

	"github.com/pashagolub/pgxmock/v3"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestCreateAndGetGoal(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery(`INSERT INTO goals`).
		WithArgs(pgxmock.AnyArg(), KindDistance, PeriodWeekly, 20000.0).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	g, err := svc.Create(context.Background(), Goal{Kind: KindDistance, Period: PeriodWeekly, Target: 20000})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if g.ID == "" || g.Completed {
		t.Fatalf("unexpected created goal: %+v", g)
	}

	mock.ExpectQuery(`SELECT id, kind, period, target, completed, created_at`).
		WithArgs(g.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "period", "target", "completed", "created_at"}).
			AddRow(g.ID, g.Kind, g.Period, g.Target, false, g.CreatedAt))

	loaded, err := svc.Get(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("get goal: %v", err)
	}
	if loaded.Kind != KindDistance || loaded.Target != 20000 {
		t.Fatalf("unexpected goal loaded: %+v", loaded)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateGoalValidation(t *testing.T) {
	svc := NewService(nil)

	cases := []Goal{
		{Kind: "steps", Period: PeriodWeekly, Target: 100},
		{Kind: KindDistance, Period: "daily", Target: 100},
		{Kind: KindDistance, Period: PeriodWeekly, Target: 0},
		{Kind: KindDistance, Period: PeriodWeekly, Target: -5},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc); err == nil {
			t.Fatalf("expected validation error for %+v", tc)
		}
	}
}

func TestProgressAccumulation(t *testing.T) {
	svc := NewService(nil)
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.Local) // Wednesday
	weekStart := periodStart(PeriodWeekly, now)

	workouts := []workout.Workout{
		{StartedAt: weekStart.Add(24 * time.Hour), DistanceM: 5000, DurationSec: 1800},
		{StartedAt: weekStart.Add(48 * time.Hour), DistanceM: 3000, DurationSec: 1200},
		{StartedAt: weekStart.Add(-time.Hour), DistanceM: 9000, DurationSec: 3600}, // previous week
	}

	p, err := svc.Progress(context.Background(), Goal{ID: "g-1", Kind: KindDistance, Period: PeriodWeekly, Target: 20000}, workouts, now)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.Value != 8000 || p.Percent != 40 || p.Completed {
		t.Fatalf("unexpected distance progress: %+v", p)
	}

	p, err = svc.Progress(context.Background(), Goal{ID: "g-2", Kind: KindDuration, Period: PeriodWeekly, Target: 7200}, workouts, now)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.Value != 3000 || p.Percent != 41 {
		t.Fatalf("unexpected duration progress: %+v", p)
	}

	p, err = svc.Progress(context.Background(), Goal{ID: "g-3", Kind: KindFrequency, Period: PeriodWeekly, Target: 4}, workouts, now)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if p.Value != 2 || p.Percent != 50 {
		t.Fatalf("unexpected frequency progress: %+v", p)
	}
}

func TestProgressCompletionLatch(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	now := time.Now()
	workouts := []workout.Workout{{StartedAt: now, DistanceM: 25000}}
	g := Goal{ID: "g-1", Kind: KindDistance, Period: PeriodWeekly, Target: 20000}

	mock.ExpectExec(`UPDATE goals SET completed=true`).
		WithArgs("g-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO achievements`).
		WithArgs(pgxmock.AnyArg(), "g-1", KindDistance, 20000.0, PeriodWeekly, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	p, err := svc.Progress(context.Background(), g, workouts, now)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !p.Completed || p.Percent != 100 {
		t.Fatalf("expected completed progress: %+v", p)
	}

	// A concurrent recomputation lost the latch race: no achievement insert.
	mock.ExpectExec(`UPDATE goals SET completed=true`).
		WithArgs("g-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	p, err = svc.Progress(context.Background(), g, workouts, now)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if !p.Completed {
		t.Fatalf("expected completed progress after lost race")
	}

	// An already completed goal never touches the database again.
	g.Completed = true
	if _, err := svc.Progress(context.Background(), g, nil, now); err != nil {
		t.Fatalf("progress on completed goal: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListDeleteAchievements(t *testing.T) {
	mock := newMock(t)
	svc := NewService(mock)

	mock.ExpectQuery(`SELECT id, kind, period, target, completed, created_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "period", "target", "completed", "created_at"}).
			AddRow("g-1", KindDistance, PeriodWeekly, 20000.0, false, time.Now()).
			AddRow("g-2", KindFrequency, PeriodMonthly, 12.0, true, time.Now()))

	goals, err := svc.List(context.Background())
	if err != nil || len(goals) != 2 {
		t.Fatalf("list goals: %v (%d)", err, len(goals))
	}

	mock.ExpectExec(`DELETE FROM goals`).
		WithArgs("g-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	if err := svc.Delete(context.Background(), "g-1"); err != nil {
		t.Fatalf("delete goal: %v", err)
	}

	mock.ExpectQuery(`SELECT id, goal_id, kind, value, period, achieved_at`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "goal_id", "kind", "value", "period", "achieved_at"}).
			AddRow("a-1", "g-2", KindFrequency, 12.0, PeriodMonthly, time.Now()))

	achievements, err := svc.Achievements(context.Background())
	if err != nil || len(achievements) != 1 {
		t.Fatalf("achievements: %v (%d)", err, len(achievements))
	}
	if achievements[0].GoalID != "g-2" {
		t.Fatalf("unexpected achievement: %+v", achievements[0])
	}
}

func TestPeriodStartBoundaries(t *testing.T) {
	// Wednesday 2026-08-26
	now := time.Date(2026, 8, 26, 15, 30, 0, 0, time.Local)

	week := periodStart(PeriodWeekly, now)
	if week.Weekday() != time.Sunday || week.Hour() != 0 {
		t.Fatalf("unexpected weekly start %v", week)
	}
	month := periodStart(PeriodMonthly, now)
	if month.Day() != 1 || month.Month() != time.August {
		t.Fatalf("unexpected monthly start %v", month)
	}
	year := periodStart(PeriodYearly, now)
	if year.Month() != time.January || year.Day() != 1 {
		t.Fatalf("unexpected yearly start %v", year)
	}
}
