package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Error messages for faults raised outside the handlers
const (
	MsgFileTooLarge     = "File too large"
	MsgNotFound         = "Endpoint not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgInternal         = "Internal server error"
)

// ErrorHandler is a custom error handler for Fiber
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Default to 500
	code := fiber.StatusInternalServerError
	message := MsgInternal

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		switch code {
		case fiber.StatusRequestEntityTooLarge:
			message = MsgFileTooLarge
		case fiber.StatusNotFound:
			message = MsgNotFound
		case fiber.StatusMethodNotAllowed:
			message = MsgMethodNotAllowed
		case fiber.StatusInternalServerError:
			message = MsgInternal
		default:
			message = e.Message
		}
	} else {
		log.Printf("Error: %s %s: %v", c.Method(), c.Path(), err)
	}

	return Error(c, code, message)
}

// APIResponse is the error envelope shared by every endpoint
type APIResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Error returns an error response
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Error:   message,
	})
}
