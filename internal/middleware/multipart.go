package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// MsgInvalidRequestType is returned when an upload route receives a body
// that is not multipart/form-data
const MsgInvalidRequestType = "Invalid request type. Must be multipart/form-data"

// MultipartRequired rejects requests whose Content-Type is not
// multipart/form-data with 415 before the body is parsed
func MultipartRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		contentType := strings.ToLower(string(c.Request().Header.ContentType()))
		if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
				"success": false,
				"error":   MsgInvalidRequestType,
			})
		}
		return c.Next()
	}
}

// RequestID returns the ID assigned by the requestid middleware, if any
func RequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
