package workout

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"backend-stridehub/internal/db"

	"github.com/google/uuid"
)

// Number of workouts retained in memory when the database is unreachable.
const fallbackLimit = 5

type Service struct {
	db db.Querier

	mu       sync.Mutex
	fallback []Workout
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// Save persists a finished workout. The stored route is capped at
// MaxStoredRoutePoints. When the insert fails the workout is kept in a
// small in-memory fallback (summary only, route dropped) so the run is
// not lost; the failure is logged, never surfaced.
func (s *Service) Save(ctx context.Context, w Workout) (Workout, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if len(w.Route) > MaxStoredRoutePoints {
		w.Route = w.Route[:MaxStoredRoutePoints]
	}

	routeJSON, err := json.Marshal(w.Route)
	if err != nil {
		routeJSON = []byte("[]")
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO workouts (id, name, started_at, ended_at, duration_sec, distance_m, avg_heart_rate, max_heart_rate, calories, route)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at
	`, w.ID, w.Name, w.StartedAt, w.EndedAt, w.DurationSec, w.DistanceM, w.AvgHeartRate, w.MaxHeartRate, w.Calories, routeJSON)
	if err := row.Scan(&w.CreatedAt); err != nil {
		log.Printf("workout: save failed, retaining locally: %v", err)
		s.retain(w)
		return w, nil
	}
	return w, nil
}

// retain keeps the summary of a workout that could not be persisted,
// newest first, dropping route points and anything beyond the limit.
func (s *Service) retain(w Workout) {
	w.Route = nil
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = append([]Workout{w}, s.fallback...)
	if len(s.fallback) > fallbackLimit {
		s.fallback = s.fallback[:fallbackLimit]
	}
}

// List returns finished workouts started at or after the given instant
// (zero means all), newest first, with locally retained workouts first.
func (s *Service) List(ctx context.Context, since time.Time) ([]Workout, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, started_at, ended_at, duration_sec, distance_m, avg_heart_rate, max_heart_rate, calories, route, created_at
		FROM workouts
		WHERE started_at >= $1
		ORDER BY started_at DESC
	`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		var w Workout
		var routeJSON []byte
		if err := rows.Scan(&w.ID, &w.Name, &w.StartedAt, &w.EndedAt, &w.DurationSec, &w.DistanceM, &w.AvgHeartRate, &w.MaxHeartRate, &w.Calories, &routeJSON, &w.CreatedAt); err != nil {
			return nil, err
		}
		if len(routeJSON) > 0 {
			_ = json.Unmarshal(routeJSON, &w.Route)
		}
		workouts = append(workouts, w)
	}

	s.mu.Lock()
	retained := make([]Workout, len(s.fallback))
	copy(retained, s.fallback)
	s.mu.Unlock()

	kept := retained[:0]
	for _, w := range retained {
		if !w.StartedAt.Before(since) {
			kept = append(kept, w)
		}
	}
	return append(kept, workouts...), nil
}

func (s *Service) Get(ctx context.Context, id string) (Workout, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, started_at, ended_at, duration_sec, distance_m, avg_heart_rate, max_heart_rate, calories, route, created_at
		FROM workouts WHERE id=$1
	`, id)
	var w Workout
	var routeJSON []byte
	if err := row.Scan(&w.ID, &w.Name, &w.StartedAt, &w.EndedAt, &w.DurationSec, &w.DistanceM, &w.AvgHeartRate, &w.MaxHeartRate, &w.Calories, &routeJSON, &w.CreatedAt); err != nil {
		return Workout{}, err
	}
	if len(routeJSON) > 0 {
		_ = json.Unmarshal(routeJSON, &w.Route)
	}
	return w, nil
}

// Rename updates the display name, the sole permitted post-creation
// field update.
func (s *Service) Rename(ctx context.Context, id, name string) error {
	_, err := s.db.Exec(ctx, `UPDATE workouts SET name=$2 WHERE id=$1`, id, name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	for i := range s.fallback {
		if s.fallback[i].ID == id {
			s.fallback[i].Name = name
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM workouts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	kept := s.fallback[:0]
	for _, w := range s.fallback {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	s.fallback = kept
	s.mu.Unlock()
	return nil
}
