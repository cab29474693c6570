package handler

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/appdotbuilder/canossa-info-system/internal/middleware"
	"github.com/appdotbuilder/canossa-info-system/internal/service"
	"github.com/appdotbuilder/canossa-info-system/internal/utils"
	"github.com/appdotbuilder/canossa-info-system/internal/validation"
)

var errMalformedInput = errors.New("malformed procedure input")

// bindInput decodes the procedure input: the ?input= query parameter for GET
// requests, the request body otherwise. Missing input leaves target untouched.
func bindInput(c *fiber.Ctx, target interface{}) error {
	var raw []byte
	if c.Method() == fiber.MethodGet {
		raw = []byte(strings.TrimSpace(c.Query("input")))
	} else {
		raw = c.Body()
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return errMalformedInput
	}
	return nil
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	return service.Actor{
		ID:   middleware.AdminIDFromContext(c),
		Role: middleware.RoleFromContext(c),
	}
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// sendServiceError maps service failures onto the response envelope. Only
// unexpected failures are logged.
func sendServiceError(c *fiber.Ctx, logger zerolog.Logger, err error, message string) error {
	switch {
	case errors.Is(err, errMalformedInput):
		return utils.SendError(c, fiber.StatusBadRequest, "invalid input")
	case isValidationError(err):
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", validation.Details(err))
	case errors.Is(err, service.ErrCampusActivityNotFound), errors.Is(err, service.ErrPageContentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return utils.SendError(c, fiber.StatusConflict, "a record with the same unique value already exists")
	default:
		requestLogger := middleware.RequestLogger(logger, c)
		requestLogger.Error().Err(err).Str("path", c.Path()).Msg(message)
		return utils.SendError(c, fiber.StatusInternalServerError, message)
	}
}
