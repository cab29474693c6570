package handler_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/handler"
	"github.com/appdotbuilder/canossa-info-system/internal/middleware"
	"github.com/appdotbuilder/canossa-info-system/internal/service"
)

type mockUploadService struct {
	lastActor service.Actor
	response  dto.ImageUploadResponse
	err       error
}

func (m *mockUploadService) Upload(_ context.Context, file *multipart.FileHeader, actor service.Actor) (dto.ImageUploadResponse, error) {
	if file != nil {
		if _, err := file.Open(); err != nil {
			return dto.ImageUploadResponse{}, err
		}
	}
	m.lastActor = actor
	if m.err != nil {
		return dto.ImageUploadResponse{}, m.err
	}
	return m.response, nil
}

func uploadApp(svc service.ImageUploadService) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/admin/uploads", func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalAdminID, uint(7))
		c.Locals(middleware.LocalRole, "admin")
		return c.Next()
	})
	handler.NewUploadHandler(svc, zerolog.New(io.Discard)).Register(group)
	return app
}

func imageRequest(t *testing.T) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads/images", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadHandlerSuccess(t *testing.T) {
	svc := &mockUploadService{response: dto.ImageUploadResponse{URL: "https://cdn.example.com/photo.png", MimeType: "image/png", FileName: "photo.png"}}

	resp, payload := do(t, uploadApp(svc), imageRequest(t))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, payload.Success)
	require.Contains(t, string(payload.Data), "https://cdn.example.com/photo.png")
	require.Equal(t, uint(7), svc.lastActor.ID)
	require.Equal(t, "admin", svc.lastActor.Role)
}

func TestUploadHandlerMapsErrors(t *testing.T) {
	cases := map[error]int{
		service.ErrUploadTooLarge:       http.StatusRequestEntityTooLarge,
		service.ErrUploadTypeNotAllowed: http.StatusBadRequest,
		io.ErrUnexpectedEOF:             http.StatusInternalServerError,
	}
	for err, status := range cases {
		resp, payload := do(t, uploadApp(&mockUploadService{err: err}), imageRequest(t))
		require.Equal(t, status, resp.StatusCode, err.Error())
		require.False(t, payload.Success)
	}
}

func TestUploadHandlerRequiresFile(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads/images", nil)
	resp, payload := do(t, uploadApp(&mockUploadService{}), req)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "file is required", payload.Message)
}
