package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/service"
	"github.com/appdotbuilder/canossa-info-system/internal/utils"
)

// PageContentHandler serves the static page procedures.
type PageContentHandler struct {
	service service.PageContentService
	logger  zerolog.Logger
}

// NewPageContentHandler constructs the handler.
func NewPageContentHandler(service service.PageContentService, logger zerolog.Logger) *PageContentHandler {
	return &PageContentHandler{
		service: service,
		logger:  logger.With().Str("component", "page_content_handler").Logger(),
	}
}

// Procedures lists the page procedures.
func (h *PageContentHandler) Procedures() []Procedure {
	return []Procedure{
		query("getPageContent", AccessPublic, h.getBySlug),
		query("getAllPages", AccessAdmin, h.listAll),
		mutation("createPageContent", AccessAdmin, h.create),
		mutation("updatePageContent", AccessAdmin, h.update),
	}
}

func (h *PageContentHandler) getBySlug(c *fiber.Ctx) error {
	var req dto.PageBySlugRequest
	if err := bindInput(c, &req); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	page, err := h.service.GetPublishedBySlug(c.UserContext(), req)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to load page")
	}
	if page == nil {
		return utils.SendSuccess(c, "page not found", nil)
	}
	return utils.SendSuccess(c, "page retrieved", page)
}

func (h *PageContentHandler) listAll(c *fiber.Ctx) error {
	pages, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list pages")
	}
	return utils.SendSuccess(c, "pages retrieved", pages)
}

func (h *PageContentHandler) create(c *fiber.Ctx) error {
	var payload dto.PageContentCreateRequest
	if err := bindInput(c, &payload); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	created, err := h.service.Create(c.UserContext(), payload, actorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to create page")
	}
	return utils.SendSuccess(c, "page created", created)
}

func (h *PageContentHandler) update(c *fiber.Ctx) error {
	var payload dto.PageContentUpdateRequest
	if err := bindInput(c, &payload); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	updated, err := h.service.Update(c.UserContext(), payload, actorFromContext(c))
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to update page")
	}
	return utils.SendSuccess(c, "page updated", updated)
}
