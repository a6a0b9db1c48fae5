package server

import (
	"backend-stridehub/internal/config"
	"backend-stridehub/internal/goal"
	"backend-stridehub/internal/metrics"
	"backend-stridehub/internal/session"
	"backend-stridehub/internal/source"
	"backend-stridehub/internal/stats"
	"backend-stridehub/internal/stream"
	"backend-stridehub/internal/workout"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Stream  *stream.Hub
	Session *session.Manager
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:    app,
		Cfg:    cfg,
		DB:     db,
		Redis:  redisClient,
		Stream: stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	profile := metrics.Profile{
		WeightKg:     s.Cfg.UserWeightKg,
		Age:          s.Cfg.UserAge,
		Sex:          s.Cfg.UserSex,
		MaxHeartRate: s.Cfg.UserMaxHR,
	}

	remote := source.NewRemote()
	manager := session.NewManager(s.Cfg.MaxAccuracyM, s.Cfg.MinMoveM, profile, remote)
	manager.OnPoint(s.Stream.PublishPoint)
	s.Session = manager

	history := workout.NewService(s.DB)
	goals := goal.NewService(s.DB)

	session.RegisterRoutes(s.App.Group("/sessions"), manager, history, remote, session.SimDefaults{
		Route:    s.Cfg.SimRoute,
		SpeedKmh: s.Cfg.SimSpeedKmh,
	})
	workout.RegisterRoutes(s.App.Group("/workouts"), history)
	goal.RegisterRoutes(s.App.Group("/goals"), goals, history)
	stats.RegisterRoutes(s.App.Group("/stats"), history)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
