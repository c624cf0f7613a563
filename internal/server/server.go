package server

import (
	"sirwa/internal/config"
	"sirwa/internal/handlers"
	"sirwa/internal/metrics"
	"sirwa/internal/middleware"
	"sirwa/internal/models"
	"sirwa/internal/repositories"
	"sirwa/internal/services"
	"sirwa/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// Deps are the process-scoped resources shared by every request.
type Deps struct {
	Config     *config.Config
	Repository repositories.DocumentRepository
	Publisher  services.EventPublisher // optional
	Metrics    *metrics.Metrics
	Logger     *zap.Logger
}

// New builds the Fiber app with all middleware and routes registered.
func New(d Deps) *fiber.App {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New("sirwa")
	}

	app := fiber.New(fiber.Config{
		AppName:               "Sirwa API",
		ErrorHandler:          handlers.ErrorHandler(d.Logger),
		DisableStartupMessage: true,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger(d.Logger))
	app.Use(middleware.Metrics(d.Metrics))

	// --- Services ---
	v := validation.New()
	wardrobeService := services.NewRecordService[models.WardrobeItem](d.Repository, d.Publisher, d.Metrics, d.Logger)
	reviewService := services.NewRecordService[models.Review](d.Repository, d.Publisher, d.Metrics, d.Logger)
	pickupService := services.NewRecordService[models.PickupRequest](d.Repository, d.Publisher, d.Metrics, d.Logger)
	kycService := services.NewRecordService[models.LuxuryKyc](d.Repository, d.Publisher, d.Metrics, d.Logger)

	// --- Routes ---
	handlers.NewSystemHandler(d.Repository, d.Config.DatabaseURLSet(), d.Config.DatabaseNameSet()).RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(d.Metrics.Handler()))

	api := app.Group("/api")
	handlers.NewWardrobeHandler(wardrobeService, v, d.Config.DefaultListLimit).RegisterRoutes(api)
	handlers.NewReviewHandler(reviewService, v, d.Config.DefaultListLimit).RegisterRoutes(api)
	handlers.NewPickupHandler(pickupService, v).RegisterRoutes(api)
	handlers.NewKycHandler(kycService, v).RegisterRoutes(api)

	return app
}
