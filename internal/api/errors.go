package api

import (
	"errors"

	"github.com/bilgisen/fortune-news/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ValidationError carries every violated field of a request so a client
// can fix all problems in one round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from field violations.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NotFoundError maps to a 404 with a generic message and no field list.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// Postgres error codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgRestrictViolation   = "23001"
)

// HandleError is the single funnel every handler routes its failures
// through. It classifies the error and emits the matching envelope; no
// route re-implements this mapping.
func HandleError(c *fiber.Ctx, err error) error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return Error(c, fiber.StatusBadRequest, "validation failed", validationErr.Fields...)
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return Error(c, fiber.StatusNotFound, notFoundErr.Message)
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Error(c, fiber.StatusNotFound, "record not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return Error(c, fiber.StatusBadRequest, "record already exists, unique constraint violated")
		case pgForeignKeyViolation:
			return Error(c, fiber.StatusBadRequest, "foreign key constraint failed")
		case pgRestrictViolation:
			return Error(c, fiber.StatusBadRequest, "data relation conflict")
		default:
			logger.Get().Error().Err(err).Str("pg_code", pgErr.Code).Msg("Database operation failed")
			return Error(c, fiber.StatusInternalServerError, "database operation failed")
		}
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("Unhandled route error")

	message := "internal server error"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return Error(c, fiber.StatusInternalServerError, message)
}
