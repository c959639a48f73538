package handlers

import (
	"booking-intake/errors"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) CreateBooking(c *fiber.Ctx) error {
	fields := map[string]interface{}{}
	if err := c.App().Config().JSONDecoder(c.Body(), &fields); err != nil {
		return errors.RaiseBadRequestError(c, "request body must be a JSON object")
	}

	booking, err := h.bookings.Create(c.UserContext(), fields)
	if err != nil {
		return h.fail(c, err, "error creating booking")
	}

	h.logger.Info("booking created", "id", booking.Id.Hex(), "carType", booking.CarType)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"booking": booking})
}

func (h *Handler) GetBookings(c *fiber.Ctx) error {
	bookings, err := h.bookings.ListAll(c.UserContext())
	if err != nil {
		return h.fail(c, err, "error fetching bookings")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"count":    len(bookings),
		"bookings": bookings})
}

func (h *Handler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.bookings.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "error fetching booking")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"booking": booking})
}

func (h *Handler) DeleteBooking(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.bookings.DeleteByID(c.UserContext(), id); err != nil {
		return h.fail(c, err, "error deleting booking")
	}

	h.logger.Info("booking deleted", "id", id)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking deleted successfully"})
}
