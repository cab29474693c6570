package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/canossa-info-system/internal/auth"
	"github.com/appdotbuilder/canossa-info-system/internal/config"
	"github.com/appdotbuilder/canossa-info-system/internal/database"
	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/handler"
	"github.com/appdotbuilder/canossa-info-system/internal/repository"
	"github.com/appdotbuilder/canossa-info-system/internal/router"
	"github.com/appdotbuilder/canossa-info-system/internal/service"
	"github.com/appdotbuilder/canossa-info-system/internal/validation"
)

type rpcResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

func newTestApp(t *testing.T, enforceAdmin bool) *fiber.App {
	t.Helper()

	db, err := database.ConnectSQLite(fmt.Sprintf("file:router_%d?mode=memory&cache=shared", time.Now().UnixNano()))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	logger := zerolog.Nop()
	validate := validation.New()
	tokens := auth.NewTokenManager("router-secret", time.Hour)
	audit := service.NewAuditService(repository.NewAuditLogRepository(db), logger)

	activities := service.NewCampusActivityService(repository.NewCampusActivityRepository(db), validate, audit, nil, 0, logger)
	pages := service.NewPageContentService(repository.NewPageContentRepository(db), validate, audit, nil, 0, logger)
	admins := service.NewAdminAuthService(repository.NewAdministratorRepository(db), auth.NewBcryptHasher(4), tokens, validate, audit, logger)

	cfg := config.Config{
		AppName:         "Canossa Info System",
		EnforceAdmin:    enforceAdmin,
		LoginRateLimit:  3,
		LoginRateWindow: time.Minute,
	}

	app := fiber.New()
	require.NoError(t, router.Register(app, cfg, router.Dependencies{
		CampusActivityHandler: handler.NewCampusActivityHandler(activities, logger),
		PageContentHandler:    handler.NewPageContentHandler(pages, logger),
		AdminAuthHandler:      handler.NewAdminAuthHandler(admins, logger),
		AuditHandler:          handler.NewAuditHandler(audit, logger),
		Tokens:                tokens,
	}))
	return app
}

func call(t *testing.T, app *fiber.App, method, name, body, token string) (int, rpcResponse) {
	t.Helper()

	target := router.RPCPrefix + "/" + name
	var reader io.Reader
	if method == http.MethodGet && body != "" {
		target += "?input=" + url.QueryEscape(body)
	} else if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload rpcResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload), string(raw))
	}
	return resp.StatusCode, payload
}

func TestProcedureTableIsComplete(t *testing.T) {
	names := map[string]handler.Access{}
	deps := router.Dependencies{
		CampusActivityHandler: handler.NewCampusActivityHandler(nil, zerolog.Nop()),
		PageContentHandler:    handler.NewPageContentHandler(nil, zerolog.Nop()),
		AdminAuthHandler:      handler.NewAdminAuthHandler(nil, zerolog.Nop()),
		AuditHandler:          handler.NewAuditHandler(nil, zerolog.Nop()),
	}
	for _, procedure := range router.Procedures(deps) {
		names[procedure.Name] = procedure.Access
	}

	require.Equal(t, map[string]handler.Access{
		"healthcheck":           handler.AccessPublic,
		"getCampusActivities":   handler.AccessPublic,
		"getFeaturedActivities": handler.AccessPublic,
		"getPageContent":        handler.AccessPublic,
		"adminLogin":            handler.AccessPublic,
		"createCampusActivity":  handler.AccessAdmin,
		"updateCampusActivity":  handler.AccessAdmin,
		"deleteCampusActivity":  handler.AccessAdmin,
		"getAllPages":           handler.AccessAdmin,
		"createPageContent":     handler.AccessAdmin,
		"updatePageContent":     handler.AccessAdmin,
		"createAdministrator":   handler.AccessAdmin,
		"getAuditLogs":          handler.AccessAdmin,
	}, names)
}

func TestActivityLifecycleOverRPC(t *testing.T) {
	app := newTestApp(t, false)

	status, resp := call(t, app, http.MethodPost, "createCampusActivity",
		`{"title":"Sports Day","description":"Annual games","content":"<p>Games</p>","activity_date":"2024-08-17","is_featured":true}`, "")
	require.Equal(t, http.StatusOK, status, resp.Message)
	var created dto.CampusActivityResponse
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	require.True(t, created.IsPublished)

	status, resp = call(t, app, http.MethodGet, "getFeaturedActivities", "", "")
	require.Equal(t, http.StatusOK, status)
	var featured []dto.CampusActivityResponse
	require.NoError(t, json.Unmarshal(resp.Data, &featured))
	require.Len(t, featured, 1)

	status, _ = call(t, app, http.MethodPost, "updateCampusActivity", fmt.Sprintf(`{"id":%d,"is_published":false}`, created.ID), "")
	require.Equal(t, http.StatusOK, status)

	status, resp = call(t, app, http.MethodGet, "getCampusActivities", "", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[]`, string(resp.Data))

	status, resp = call(t, app, http.MethodPost, "deleteCampusActivity", fmt.Sprintf(`{"id":%d}`, created.ID), "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"success":true}`, string(resp.Data))

	status, resp = call(t, app, http.MethodPost, "updateCampusActivity", fmt.Sprintf(`{"id":%d,"title":"gone"}`, created.ID), "")
	require.Equal(t, http.StatusNotFound, status)
	require.False(t, resp.Success)
}

func TestInputRulesOverRPC(t *testing.T) {
	app := newTestApp(t, false)

	status, resp := call(t, app, http.MethodPost, "createCampusActivity",
		`{"title":"Open Day","description":"d","content":"c","image_url":"","activity_date":"2024-08-17"}`, "")
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "url", resp.Details["image_url"])

	password := strings.Repeat("é", 40)
	status, resp = call(t, app, http.MethodPost, "createAdministrator",
		`{"username":"bursar","email":"bursar@canossa.test","password":"`+password+`","full_name":"Bursar"}`, "")
	require.Equal(t, http.StatusBadRequest, status)
	require.False(t, resp.Success)
	require.Equal(t, "bcryptlen", resp.Details["password"])

	status, _ = call(t, app, http.MethodPost, "createPageContent", `{"page_slug":"school_history","title":"History","content":"Founded"}`, "")
	require.Equal(t, http.StatusOK, status)
}

func TestPagesOverRPC(t *testing.T) {
	app := newTestApp(t, false)

	status, _ := call(t, app, http.MethodPost, "createPageContent", `{"page_slug":"about-us","title":"About","content":"Hello"}`, "")
	require.Equal(t, http.StatusOK, status)

	status, resp := call(t, app, http.MethodPost, "createPageContent", `{"page_slug":"about-us","title":"Again","content":"Hello"}`, "")
	require.Equal(t, http.StatusConflict, status)
	require.False(t, resp.Success)

	status, resp = call(t, app, http.MethodPost, "createPageContent", `{"page_slug":"About Us","title":"Bad","content":"x"}`, "")
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, "slug", resp.Details["page_slug"])

	status, resp = call(t, app, http.MethodGet, "getPageContent", `{"slug":"about-us"}`, "")
	require.Equal(t, http.StatusOK, status)
	var page dto.PageContentResponse
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	require.Equal(t, "About", page.Title)

	status, resp = call(t, app, http.MethodGet, "getPageContent", `{"slug":"nope"}`, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "null", string(resp.Data))
}

func TestAdminGateAndLogin(t *testing.T) {
	app := newTestApp(t, true)

	status, _ := call(t, app, http.MethodPost, "createAdministrator",
		`{"username":"principal","email":"p@canossa.test","password":"secret123","full_name":"Principal"}`, "")
	require.Equal(t, http.StatusUnauthorized, status)

	tokens := auth.NewTokenManager("router-secret", time.Hour)
	bootstrap, _, err := tokens.Issue(1, "bootstrap", time.Now())
	require.NoError(t, err)

	status, resp := call(t, app, http.MethodPost, "createAdministrator",
		`{"username":"principal","email":"p@canossa.test","password":"secret123","full_name":"Principal"}`, bootstrap)
	require.Equal(t, http.StatusOK, status, resp.Message)
	require.NotContains(t, string(resp.Data), "password")

	status, resp = call(t, app, http.MethodPost, "adminLogin", `{"username":"principal","password":"wrong-pass"}`, "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"success":false}`, string(resp.Data))

	status, resp = call(t, app, http.MethodPost, "adminLogin", `{"username":"principal","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, status)
	var login dto.AdminLoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.True(t, login.Success)

	status, resp = call(t, app, http.MethodGet, "getAuditLogs", "", login.Token)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(resp.Data), "administrator.created")

	status, _ = call(t, app, http.MethodGet, "getAllPages", "", "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodGet, "getCampusActivities", "", "")
	require.Equal(t, http.StatusOK, status)
}

func TestLoginRateLimit(t *testing.T) {
	app := newTestApp(t, false)

	for i := 0; i < 3; i++ {
		status, _ := call(t, app, http.MethodPost, "adminLogin", `{"username":"x","password":"y"}`, "")
		require.Equal(t, http.StatusOK, status)
	}
	status, resp := call(t, app, http.MethodPost, "adminLogin", `{"username":"x","password":"y"}`, "")
	require.Equal(t, http.StatusTooManyRequests, status)
	require.False(t, resp.Success)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	app := newTestApp(t, false)

	status, resp := call(t, app, http.MethodGet, "healthcheck", "", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, string(resp.Data), `"status":"ok"`)

	metrics, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, metrics.StatusCode)
}
