package goal

import (
	"time"

	"backend-stridehub/internal/workout"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, history *workout.Service) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req Goal
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		g, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(g)
	})

	r.Get("/", func(c *fiber.Ctx) error {
		goals, err := svc.List(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"goals": goals})
	})

	r.Get("/achievements", func(c *fiber.Ctx) error {
		achievements, err := svc.Achievements(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fiber.Map{"achievements": achievements})
	})

	r.Get("/:id/progress", func(c *fiber.Ctx) error {
		g, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "goal not found")
		}
		workouts, err := history.List(c.Context(), time.Time{})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		progress, err := svc.Progress(c.Context(), g, workouts, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(progress)
	})

	r.Delete("/:id", func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
