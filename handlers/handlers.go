package handlers

import (
	"log/slog"

	"booking-intake/database"
	"booking-intake/errors"

	"github.com/gofiber/fiber/v2"
)

type ConnectionState interface {
	State() database.State
}

type Handler struct {
	bookings   *database.BookingRepository
	connection ConnectionState
	logger     *slog.Logger
}

// New builds the HTTP handlers. connection may be nil, in which case the
// health check reports the database state as unknown.
func New(bookings *database.BookingRepository, connection ConnectionState, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{bookings: bookings, connection: connection, logger: logger}
}

func (h *Handler) GetHome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"message":   "Booking service is running",
		"endpoints": fiber.Map{
			"createBooking": "POST /api/book",
			"listBookings":  "GET /api/bookings",
			"getBooking":    "GET /api/bookings/:id",
			"deleteBooking": "DELETE /api/bookings/:id",
			"health":        "GET /health",
			"metrics":       "GET /metrics",
		}})
}

func (h *Handler) GetHealth(c *fiber.Ctx) error {
	state := "unknown"
	if h.connection != nil {
		state = h.connection.State().String()
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"status":   "ok",
		"database": state})
}

func (h *Handler) fail(c *fiber.Ctx, err error, message string) error {
	if errors.StatusOf(err) >= fiber.StatusInternalServerError {
		h.logger.Error(message,
			"error", err,
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.GetRespHeader(fiber.HeaderXRequestID))
	}
	return errors.RaiseFromError(c, err, message)
}
