package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/canossa-info-system/internal/handler"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Details map[string]string `json:"details"`
}

func mountProcedures(procedures ...[]handler.Procedure) *fiber.App {
	app := fiber.New()
	rpc := app.Group("/rpc")
	for _, group := range procedures {
		for _, procedure := range group {
			if procedure.Kind == handler.KindQuery {
				rpc.Get("/"+procedure.Name, procedure.Handler)
			} else {
				rpc.Post("/"+procedure.Name, procedure.Handler)
			}
		}
	}
	return app
}

func newQueryRequest(t *testing.T, name string, input interface{}) *http.Request {
	t.Helper()
	target := "/rpc/" + name
	if input != nil {
		raw, err := json.Marshal(input)
		require.NoError(t, err)
		target += "?input=" + url.QueryEscape(string(raw))
	}
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func callQuery(t *testing.T, app *fiber.App, name string, input interface{}) (*http.Response, envelope) {
	t.Helper()
	return do(t, app, newQueryRequest(t, name, input))
}

func callMutation(t *testing.T, app *fiber.App, name string, body string) (*http.Response, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/rpc/"+name, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, app, req)
}

func do(t *testing.T, app *fiber.App, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload envelope
	require.NoError(t, json.Unmarshal(body, &payload), string(body))
	return resp, payload
}
