package server

import "github.com/gofiber/fiber/v2"

// Response is the JSON envelope for all API responses.
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// SendSuccess sends a success envelope with the given payload.
func SendSuccess(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(Response{Status: "success", Data: data})
}

// SendError sends an error envelope with the given message.
func SendError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Status: "error", Message: message})
}
