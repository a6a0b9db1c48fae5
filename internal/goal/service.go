package goal

import (
	"context"
	"fmt"
	"time"

	"backend-stridehub/internal/db"
	"backend-stridehub/internal/workout"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Goal) (Goal, error) {
	if !validKind(input.Kind) {
		return Goal{}, fmt.Errorf("invalid goal kind %q", input.Kind)
	}
	if !validPeriod(input.Period) {
		return Goal{}, fmt.Errorf("invalid goal period %q", input.Period)
	}
	if input.Target <= 0 {
		return Goal{}, fmt.Errorf("goal target must be positive")
	}

	input.ID = uuid.NewString()
	row := s.db.QueryRow(ctx, `
		INSERT INTO goals (id, kind, period, target, completed)
		VALUES ($1,$2,$3,$4,false)
		RETURNING created_at
	`, input.ID, input.Kind, input.Period, input.Target)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Goal{}, err
	}
	return input, nil
}

func (s *Service) List(ctx context.Context) ([]Goal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, kind, period, target, completed, created_at
		FROM goals
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.Kind, &g.Period, &g.Target, &g.Completed, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (s *Service) Get(ctx context.Context, id string) (Goal, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, kind, period, target, completed, created_at
		FROM goals WHERE id=$1
	`, id)
	var g Goal
	if err := row.Scan(&g.ID, &g.Kind, &g.Period, &g.Target, &g.Completed, &g.CreatedAt); err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM goals WHERE id=$1`, id)
	return err
}

// Progress accumulates the goal's metric over workouts inside the current
// period window. When accumulated progress first reaches the target the
// goal latches completed and an achievement is recorded; the latch is
// guarded in SQL so the transition happens exactly once even across
// concurrent recomputations.
func (s *Service) Progress(ctx context.Context, g Goal, workouts []workout.Workout, now time.Time) (Progress, error) {
	start := periodStart(g.Period, now)

	var value float64
	for _, w := range workouts {
		if w.StartedAt.Before(start) {
			continue
		}
		switch g.Kind {
		case KindDistance:
			value += w.DistanceM
		case KindDuration:
			value += float64(w.DurationSec)
		case KindFrequency:
			value++
		}
	}

	percent := 0
	if g.Target > 0 {
		percent = int(value / g.Target * 100)
		if percent > 100 {
			percent = 100
		}
	}

	p := Progress{Value: value, Target: g.Target, Percent: percent, Completed: g.Completed}
	if percent < 100 || g.Completed {
		return p, nil
	}

	tag, err := s.db.Exec(ctx, `UPDATE goals SET completed=true WHERE id=$1 AND completed=false`, g.ID)
	if err != nil {
		return p, err
	}
	p.Completed = true
	if tag.RowsAffected() == 0 {
		// Another recomputation already latched this goal.
		return p, nil
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO achievements (id, goal_id, kind, value, period, achieved_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, uuid.NewString(), g.ID, g.Kind, g.Target, g.Period, now)
	return p, err
}

func (s *Service) Achievements(ctx context.Context) ([]Achievement, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, goal_id, kind, value, period, achieved_at
		FROM achievements
		ORDER BY achieved_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []Achievement
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(&a.ID, &a.GoalID, &a.Kind, &a.Value, &a.Period, &a.AchievedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, nil
}
