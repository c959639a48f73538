package errors

import (
	stderrors "errors"

	"booking-intake/model"

	"github.com/gofiber/fiber/v2"
)

func RaiseError(context *fiber.Ctx, status int, message string, data string) error {
	body := fiber.Map{
		"success": false,
		"message": message}
	if data != "" {
		body["error"] = data
	}
	return context.Status(status).JSON(body)
}

func RaiseInternalServerError(context *fiber.Ctx, message string, err error) error {
	return RaiseError(context, fiber.StatusInternalServerError, message, err.Error())
}

func RaiseBadRequestError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusBadRequest, message, "")
}

func RaiseNotFoundError(context *fiber.Ctx, message string) error {
	return RaiseError(context, fiber.StatusNotFound, message, "")
}

func RaiseValidationError(context *fiber.Ctx, validationErr *model.ValidationError) error {
	return context.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "incorrect input for booking parameters",
		"errors":  validationErr.Problems})
}

// StatusOf maps an error coming out of the booking repository to the HTTP
// status it is answered with.
func StatusOf(err error) int {
	var validationErr *model.ValidationError
	switch {
	case stderrors.As(err, &validationErr), stderrors.Is(err, model.ErrInvalidID):
		return fiber.StatusBadRequest
	case stderrors.Is(err, model.ErrNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// RaiseFromError answers an error coming out of the booking repository.
// message is used for store failures only.
func RaiseFromError(context *fiber.Ctx, err error, message string) error {
	var validationErr *model.ValidationError
	switch {
	case stderrors.As(err, &validationErr):
		return RaiseValidationError(context, validationErr)
	case stderrors.Is(err, model.ErrInvalidID):
		return RaiseBadRequestError(context, "invalid booking id format")
	case stderrors.Is(err, model.ErrNotFound):
		return RaiseNotFoundError(context, "booking not found")
	default:
		return RaiseInternalServerError(context, message, err)
	}
}

// ErrorHandler answers whatever a handler or middleware returned unhandled,
// e.g. unknown routes or a recovered panic, in the same JSON shape.
func ErrorHandler(context *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		if fiberErr.Code >= fiber.StatusInternalServerError {
			return RaiseError(context, fiberErr.Code, "internal error", fiberErr.Message)
		}
		return RaiseError(context, fiberErr.Code, fiberErr.Message, "")
	}
	return RaiseInternalServerError(context, "internal error", err)
}
