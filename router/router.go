package router

import (
	"booking-intake/errors"
	"booking-intake/handlers"
	"booking-intake/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Options struct {
	AllowOrigins string
	Metrics      *middleware.Metrics
}

func New(h *handlers.Handler, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "booking-intake",
		ErrorHandler: errors.ErrorHandler,
	})

	SetupRoutes(app, h, opts)

	return app
}

func SetupRoutes(app *fiber.App, h *handlers.Handler, opts Options) {
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}
	if opts.Metrics == nil {
		opts.Metrics = middleware.NewMetrics()
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: opts.AllowOrigins}))
	app.Use(opts.Metrics.Handler())

	app.Get("/", h.GetHome)
	app.Get("/health", h.GetHealth)
	app.Get("/metrics", opts.Metrics.Expose())

	//Booking
	api := app.Group("/api")
	api.Post("/book", h.CreateBooking)
	api.Get("/bookings", h.GetBookings)
	api.Get("/bookings/:id", h.GetBooking)
	api.Delete("/bookings/:id", h.DeleteBooking)
}
