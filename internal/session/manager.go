package session

import (
	"fmt"
	"log"
	"sync"
	"time"

	"backend-stridehub/internal/metrics"
	"backend-stridehub/internal/source"
	"backend-stridehub/internal/track"
	"backend-stridehub/internal/workout"

	"github.com/google/uuid"
)

// PointFunc observes every accepted route point together with the updated
// cumulative distance. Used to fan accepted points out to live stream
// subscribers.
type PointFunc func(runID string, r track.Reading, distanceM float64)

// Manager is the run session state machine: idle -> running -> paused <->
// running -> finished. Invalid transitions are logged no-ops so a racing
// UI (double-tap finish) cannot crash a run. Every exported method is
// atomic with respect to the session state.
type Manager struct {
	maxAccuracyM float64
	minMoveM     float64
	profile      metrics.Profile
	primary      source.Source
	onPoint      PointFunc

	tick time.Duration
	now  func() time.Time

	mu       sync.Mutex
	run      *Run
	acc      *track.Accumulator
	attached []source.Source
	tickStop chan struct{}
}

func NewManager(maxAccuracyM, minMoveM float64, profile metrics.Profile, primary source.Source) *Manager {
	return &Manager{
		maxAccuracyM: maxAccuracyM,
		minMoveM:     minMoveM,
		profile:      profile,
		primary:      primary,
		tick:         time.Second,
		now:          time.Now,
	}
}

// OnPoint registers the accepted-point observer. Call before Start.
func (m *Manager) OnPoint(fn PointFunc) {
	m.onPoint = fn
}

// Start begins a new run. When a session is already active the call is a
// no-op that returns the existing run, preserving the singleton
// invariant.
func (m *Manager) Start(name string) *Run {
	m.mu.Lock()
	if m.run != nil {
		log.Printf("session: start ignored, session %s already active", m.run.ID)
		snap := m.run.clone()
		m.mu.Unlock()
		return snap
	}

	now := m.now()
	if name == "" {
		name = fmt.Sprintf("Run %s", now.Format("2006-01-02 15:04"))
	}
	m.run = &Run{
		ID:        uuid.NewString(),
		Name:      name,
		StartedAt: now,
		Status:    StatusRunning,
		Route:     []track.Reading{},
		HeartRate: []HeartRateSample{},
	}
	m.acc = track.NewAccumulator(m.maxAccuracyM, m.minMoveM)
	m.tickStop = make(chan struct{})
	go m.runTicker(m.tickStop)
	snap := m.run.clone()
	m.mu.Unlock()

	if m.primary != nil {
		if err := m.primary.Start(m.RecordPosition); err != nil {
			log.Printf("session: primary source start: %v", err)
		}
	}
	return snap
}

// runTicker advances the duration counter once per tick while the session
// is running. Paused time never counts.
func (m *Manager) runTicker(stop <-chan struct{}) {
	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.mu.Lock()
			if m.run != nil && m.run.Status == StatusRunning {
				m.run.DurationSec++
			}
			m.mu.Unlock()
		}
	}
}

func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.run == nil || m.run.Status != StatusRunning {
		log.Printf("session: pause ignored, no running session")
		return
	}
	m.run.Status = StatusPaused
}

func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.run == nil || m.run.Status != StatusPaused {
		log.Printf("session: resume ignored, no paused session")
		return
	}
	m.run.Status = StatusRunning
}

// RecordPosition routes a reading through the accumulator. Valid while
// running only; readings arriving while paused or idle are dropped.
func (m *Manager) RecordPosition(r track.Reading) {
	m.mu.Lock()
	if m.run == nil || m.run.Status != StatusRunning {
		m.mu.Unlock()
		log.Printf("session: position ignored outside running state")
		return
	}
	if !m.acc.Offer(r) {
		m.mu.Unlock()
		return
	}
	m.run.Route = append(m.run.Route, r)
	m.run.DistanceM = m.acc.DistanceM()
	runID := m.run.ID
	distance := m.run.DistanceM
	onPoint := m.onPoint
	m.mu.Unlock()

	if onPoint != nil {
		onPoint(runID, r, distance)
	}
}

// RecordHeartRate appends a monitor sample. Valid while running or
// paused. Sample timestamps never decrease.
func (m *Manager) RecordHeartRate(bpm int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.run == nil {
		log.Printf("session: heart rate ignored, no active session")
		return
	}
	if bpm <= 0 {
		log.Printf("session: heart rate ignored, invalid bpm %d", bpm)
		return
	}

	at := m.now()
	if n := len(m.run.HeartRate); n > 0 && at.Before(m.run.HeartRate[n-1].CapturedAt) {
		at = m.run.HeartRate[n-1].CapturedAt
	}
	m.run.HeartRate = append(m.run.HeartRate, HeartRateSample{BPM: bpm, CapturedAt: at})
	m.run.CurrentHeartRate = bpm
}

// Attach starts an additional position source (a simulator) feeding this
// session. Finish stops it along with the primary source.
func (m *Manager) Attach(src source.Source) error {
	m.mu.Lock()
	if m.run == nil {
		m.mu.Unlock()
		return fmt.Errorf("no active session")
	}
	m.attached = append(m.attached, src)
	m.mu.Unlock()
	return src.Start(m.RecordPosition)
}

// Finish ends the session: stops every source and the ticker, computes
// heart-rate aggregates and calories, and returns the immutable workout
// snapshot. Nil when no session is active.
func (m *Manager) Finish() *workout.Workout {
	m.mu.Lock()
	if m.run == nil {
		m.mu.Unlock()
		log.Printf("session: finish ignored, no active session")
		return nil
	}

	run := m.run
	acc := m.acc
	attached := m.attached
	tickStop := m.tickStop
	m.run = nil
	m.acc = nil
	m.attached = nil
	m.tickStop = nil
	m.mu.Unlock()

	// The session is already cleared, so any reading a source delivers
	// while shutting down is dropped by RecordPosition.
	close(tickStop)
	if m.primary != nil {
		m.primary.Stop()
	}
	for _, src := range attached {
		src.Stop()
	}

	var avgHR, maxHR int
	if len(run.HeartRate) > 0 {
		sum := 0
		for _, s := range run.HeartRate {
			sum += s.BPM
			if s.BPM > maxHR {
				maxHR = s.BPM
			}
		}
		avgHR = int(float64(sum)/float64(len(run.HeartRate)) + 0.5)
	}

	endedAt := m.now()
	calories := metrics.Calories(m.profile.WeightKg, float64(run.DurationSec)/60, float64(avgHR), m.profile.Sex, m.profile.Age)

	return &workout.Workout{
		ID:           run.ID,
		Name:         run.Name,
		StartedAt:    run.StartedAt,
		EndedAt:      endedAt,
		DurationSec:  run.DurationSec,
		DistanceM:    run.DistanceM,
		AvgHeartRate: avgHR,
		MaxHeartRate: maxHR,
		Calories:     calories,
		Route:        acc.Points(),
	}
}

// Snapshot returns a deep copy of the active run, or nil when idle.
func (m *Manager) Snapshot() *Run {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.run == nil {
		return nil
	}
	return m.run.clone()
}

// Profile exposes the runner profile the manager was built with.
func (m *Manager) Profile() metrics.Profile {
	return m.profile
}
