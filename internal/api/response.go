package api

import "github.com/gofiber/fiber/v2"

// FieldError reports a single violated field of a request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type successBody struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

type errorBody struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Success writes the uniform success envelope.
func Success(c *fiber.Ctx, data any) error {
	return c.JSON(successBody{Success: true, Data: data})
}

// SuccessMessage writes a success envelope with an attached message.
func SuccessMessage(c *fiber.Ctx, data any, message string) error {
	return c.JSON(successBody{Success: true, Data: data, Message: message})
}

// Created writes a success envelope with a 201 status.
func Created(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusCreated).
		JSON(successBody{Success: true, Data: data, Message: message})
}

// Error writes the uniform error envelope.
func Error(c *fiber.Ctx, status int, message string, errs ...FieldError) error {
	return c.Status(status).JSON(errorBody{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}
