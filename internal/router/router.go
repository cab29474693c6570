package router

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/appdotbuilder/canossa-info-system/internal/config"
	"github.com/appdotbuilder/canossa-info-system/internal/handler"
	"github.com/appdotbuilder/canossa-info-system/internal/middleware"
	"github.com/appdotbuilder/canossa-info-system/internal/observability"
)

// RPCPrefix is the mount point of the procedure surface.
const RPCPrefix = "/api/v1/rpc"

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	CampusActivityHandler *handler.CampusActivityHandler
	PageContentHandler    *handler.PageContentHandler
	AdminAuthHandler      *handler.AdminAuthHandler
	AuditHandler          *handler.AuditHandler
	// UploadHandler is nil when no image storage is configured.
	UploadHandler *handler.UploadHandler
	Tokens        middleware.TokenParser
}

// Procedures collects the full procedure table from the configured handlers.
func Procedures(deps Dependencies) []handler.Procedure {
	procedures := handler.HealthProcedures()
	if deps.CampusActivityHandler != nil {
		procedures = append(procedures, deps.CampusActivityHandler.Procedures()...)
	}
	if deps.PageContentHandler != nil {
		procedures = append(procedures, deps.PageContentHandler.Procedures()...)
	}
	if deps.AdminAuthHandler != nil {
		procedures = append(procedures, deps.AdminAuthHandler.Procedures()...)
	}
	if deps.AuditHandler != nil {
		procedures = append(procedures, deps.AuditHandler.Procedures()...)
	}
	return procedures
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) error {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	adminGate := middleware.AdminGate(cfg.EnforceAdmin, deps.Tokens)
	loginLimiter := middleware.RateLimit("login", cfg.LoginRateLimit, cfg.LoginRateWindow)

	rpc := api.Group("/rpc")
	seen := make(map[string]struct{})
	for _, procedure := range Procedures(deps) {
		if _, dup := seen[procedure.Name]; dup {
			return fmt.Errorf("procedure %q registered twice", procedure.Name)
		}
		seen[procedure.Name] = struct{}{}

		chain := make([]fiber.Handler, 0, 4)
		if procedure.RateLimited {
			chain = append(chain, loginLimiter)
		}
		if procedure.Access == handler.AccessAdmin {
			chain = append(chain, adminGate...)
		}
		chain = append(chain, procedure.Handler)

		path := "/" + procedure.Name
		switch procedure.Kind {
		case handler.KindQuery:
			rpc.Get(path, chain...)
		case handler.KindMutation:
			rpc.Post(path, chain...)
		default:
			return fmt.Errorf("procedure %q has unknown kind %q", procedure.Name, procedure.Kind)
		}
	}

	if deps.UploadHandler != nil {
		uploads := api.Group("/admin/uploads", adminGate...)
		deps.UploadHandler.Register(uploads)
	}

	return nil
}
