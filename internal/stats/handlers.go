package stats

import (
	"time"

	"backend-stridehub/internal/workout"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, history *workout.Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		workouts, err := history.List(c.Context(), time.Time{})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		summary := Compute(workouts, c.Query("period", workout.PeriodAll), time.Now())
		// A null body tells callers "no data" apart from zero activity.
		return c.JSON(summary)
	})
}
