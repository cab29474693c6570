package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/utils"
)

// AuditLogLister lists recorded audit entries.
type AuditLogLister interface {
	List(ctx context.Context, req dto.AuditLogListRequest) (dto.AuditLogListResponse, error)
}

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	service AuditLogLister
	logger  zerolog.Logger
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service AuditLogLister, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Procedures lists the audit procedures.
func (h *AuditHandler) Procedures() []Procedure {
	return []Procedure{
		query("getAuditLogs", AccessAdmin, h.list),
	}
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	var req dto.AuditLogListRequest
	if err := bindInput(c, &req); err != nil {
		return sendServiceError(c, h.logger, err, "")
	}

	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return sendServiceError(c, h.logger, err, "failed to list audit logs")
	}

	return utils.OK(c, result.Items, "audit logs retrieved", fiber.Map{"pagination": result.Pagination})
}
