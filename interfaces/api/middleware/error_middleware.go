package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"rsvp-backend/pkg/logger"
	"rsvp-backend/pkg/utils"
)

func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An error occurred"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		logger.Error(logger.CategoryAPI, "error_handler", "Request error occurred", err, map[string]interface{}{"status_code": code, "path": c.Path(), "method": c.Method()})

		if code >= fiber.StatusInternalServerError {
			return utils.ErrorResponse(c, code, message, nil)
		}
		return utils.ErrorResponse(c, code, message, err)
	}
}
