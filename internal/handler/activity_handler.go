package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/service"
	"github.com/appdotbuilder/canossa-info-system/internal/utils"
)

// CampusActivityHandler serves the campus activity procedures.
type CampusActivityHandler struct {
	service service.CampusActivityService
	logger  zerolog.Logger
}

// NewCampusActivityHandler constructs the handler.
func NewCampusActivityHandler(service service.CampusActivityService, logger zerolog.Logger) *CampusActivityHandler {
	return &CampusActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "campus_activity_handler").Logger(),
	}
}

// Procedures lists the activity procedures.
func (h *CampusActivityHandler) Procedures() []Procedure {
	return []Procedure{
		query("getCampusActivities", AccessPublic, h.listPublished),
		query("getFeaturedActivities", AccessPublic, h.listFeatured),
		mutation("createCampusActivity", AccessAdmin, h.create),
		mutation("updateCampusActivity", AccessAdmin, h.update),
		mutation("deleteCampusActivity", AccessAdmin, h.delete),
	}
}

func (h *CampusActivityHandler) listPublished(c *fiber.Ctx) error {
	items, err := h.service.ListPublished(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list campus activities")
	}
	return utils.SendSuccess(c, "campus activities retrieved", items)
}

func (h *CampusActivityHandler) listFeatured(c *fiber.Ctx) error {
	items, err := h.service.ListFeatured(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list featured activities")
	}
	return utils.SendSuccess(c, "featured activities retrieved", items)
}

func (h *CampusActivityHandler) create(c *fiber.Ctx) error {
	var payload dto.CampusActivityCreateRequest
	if err := bindInput(c, &payload); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	created, err := h.service.Create(c.UserContext(), payload, actorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create campus activity")
	}
	return utils.SendSuccess(c, "campus activity created", created)
}

func (h *CampusActivityHandler) update(c *fiber.Ctx) error {
	var payload dto.CampusActivityUpdateRequest
	if err := bindInput(c, &payload); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	updated, err := h.service.Update(c.UserContext(), payload, actorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update campus activity")
	}
	return utils.SendSuccess(c, "campus activity updated", updated)
}

func (h *CampusActivityHandler) delete(c *fiber.Ctx) error {
	var payload dto.CampusActivityDeleteRequest
	if err := bindInput(c, &payload); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	result, err := h.service.Delete(c.UserContext(), payload, actorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to delete campus activity")
	}
	message := "campus activity deleted"
	if !result.Success {
		message = "campus activity not found"
	}
	return utils.SendSuccess(c, message, result)
}
