package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/service"
	"github.com/appdotbuilder/canossa-info-system/internal/utils"
)

// AdminAuthHandler serves login and administrator provisioning.
type AdminAuthHandler struct {
	service service.AdminAuthService
	logger  zerolog.Logger
}

// NewAdminAuthHandler constructs the handler.
func NewAdminAuthHandler(service service.AdminAuthService, logger zerolog.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_auth_handler").Logger(),
	}
}

// Procedures lists the authentication procedures.
func (h *AdminAuthHandler) Procedures() []Procedure {
	login := mutation("adminLogin", AccessPublic, h.login)
	login.RateLimited = true
	return []Procedure{
		login,
		mutation("createAdministrator", AccessAdmin, h.createAdministrator),
	}
}

func (h *AdminAuthHandler) login(c *fiber.Ctx) error {
	var payload dto.AdminLoginRequest
	if err := bindInput(c, &payload); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	result, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to authenticate")
	}
	message := "login successful"
	if !result.Success {
		message = "invalid credentials"
	}
	return utils.SendSuccess(c, message, result)
}

func (h *AdminAuthHandler) createAdministrator(c *fiber.Ctx) error {
	var payload dto.AdministratorCreateRequest
	if err := bindInput(c, &payload); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	created, err := h.service.CreateAdministrator(c.UserContext(), payload, actorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create administrator")
	}
	return utils.SendSuccess(c, "administrator created", created)
}
