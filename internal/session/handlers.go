package session

import (
	"log"
	"sync"
	"time"

	"backend-stridehub/internal/metrics"
	"backend-stridehub/internal/source"
	"backend-stridehub/internal/track"
	"backend-stridehub/internal/workout"

	"github.com/gofiber/fiber/v2"
)

// SimDefaults carries the persisted simulator configuration applied when
// a request omits a field.
type SimDefaults struct {
	Route    string
	SpeedKmh float64
}

// simState tracks the simulator attached to the active session so the
// stop endpoint can reach it.
type simState struct {
	mu  sync.Mutex
	src source.Source
}

func (s *simState) set(src source.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src = src
}

func (s *simState) stop() bool {
	s.mu.Lock()
	src := s.src
	s.src = nil
	s.mu.Unlock()
	if src == nil {
		return false
	}
	src.Stop()
	return true
}

func RegisterRoutes(r fiber.Router, m *Manager, history *workout.Service, remote *source.Remote, simDefaults SimDefaults) {
	sim := &simState{}

	r.Post("/start", func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		_ = c.BodyParser(&body)
		run := m.Start(body.Name)
		return c.Status(fiber.StatusCreated).JSON(run)
	})

	r.Get("/current", func(c *fiber.Ctx) error {
		run := m.Snapshot()
		if run == nil {
			return fiber.NewError(fiber.StatusNotFound, "no active session")
		}
		return c.JSON(run)
	})

	r.Post("/pause", func(c *fiber.Ctx) error {
		m.Pause()
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/resume", func(c *fiber.Ctx) error {
		m.Resume()
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/finish", func(c *fiber.Ctx) error {
		sim.stop()
		w := m.Finish()
		if w == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		saved, err := history.Save(c.Context(), *w)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(saved)
	})

	r.Post("/position", func(c *fiber.Ctx) error {
		var raw track.RawReading
		if err := c.BodyParser(&raw); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		reading, err := track.Normalize(raw)
		if err != nil {
			// Malformed readings are dropped at the boundary; they never
			// reach the session.
			log.Printf("session: dropping invalid reading: %v", err)
			return c.SendStatus(fiber.StatusNoContent)
		}
		remote.Push(reading)
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/heartrate", func(c *fiber.Ctx) error {
		var body struct {
			BPM int `json:"bpm"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		m.RecordHeartRate(body.BPM)
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/device-error", func(c *fiber.Ctx) error {
		var body struct {
			Code int `json:"code"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"message": source.ClassifyDeviceError(body.Code)})
	})

	r.Get("/zones", func(c *fiber.Ctx) error {
		zones := metrics.ZonesFromMax(m.Profile().MaxHeartRate)
		resp := fiber.Map{"zones": zones}
		if run := m.Snapshot(); run != nil && run.CurrentHeartRate > 0 {
			resp["current_zone"] = zones.ZoneFor(run.CurrentHeartRate)
		}
		return c.JSON(resp)
	})

	r.Get("/simulator/routes", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"routes": source.Routes()})
	})

	r.Post("/simulator/start", func(c *fiber.Ctx) error {
		var body struct {
			Mode       string  `json:"mode"`
			Route      string  `json:"route"`
			SpeedKmh   float64 `json:"speed_kmh"`
			JitterM    float64 `json:"jitter_m"`
			IntervalMs int     `json:"interval_ms"`
			StartLat   float64 `json:"start_lat"`
			StartLng   float64 `json:"start_lng"`
		}
		_ = c.BodyParser(&body)

		opts := source.Options{
			Route:        body.Route,
			SpeedKmh:     body.SpeedKmh,
			JitterMeters: body.JitterM,
			StartLat:     body.StartLat,
			StartLng:     body.StartLng,
		}
		if opts.Route == "" {
			opts.Route = simDefaults.Route
		}
		if opts.SpeedKmh <= 0 {
			opts.SpeedKmh = simDefaults.SpeedKmh
		}
		if body.IntervalMs > 0 {
			opts.UpdateInterval = time.Duration(body.IntervalMs) * time.Millisecond
		}

		var src source.Source
		if body.Mode == "walk" {
			src = source.NewWalkSource(opts)
		} else {
			routeSrc, err := source.NewRouteSource(opts)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			src = routeSrc
		}

		if err := m.Attach(src); err != nil {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		sim.set(src)
		return c.JSON(fiber.Map{
			"mode":      body.Mode,
			"route":     opts.Route,
			"speed_kmh": opts.SpeedKmh,
		})
	})

	r.Post("/simulator/stop", func(c *fiber.Ctx) error {
		if !sim.stop() {
			return fiber.NewError(fiber.StatusNotFound, "no simulator running")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
