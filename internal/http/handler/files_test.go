package handler

import (
	"fmt"
	"net/http"
	"testing"

	"platformapi/internal/model"
	"platformapi/internal/service"
	serviceMocks "platformapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetFile(t *testing.T) {
	newApp := func(svc service.FileAccessService) *fiber.App {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		RegisterRoutes(app, Deps{Auth: asUser("user-1", model.RolePatient), Files: svc})
		return app
	}

	t.Run("redirects to the signed url", func(t *testing.T) {
		svc := new(serviceMocks.MockFileAccessService)
		svc.On("ResolveDownloadURL", mock.Anything, "user-1", "public/users/user-2/profile-photo/a.png").
			Return("https://store/bucket/a.png?X-Amz-Signature=abc", nil)

		resp, err := newApp(svc).Test(jsonRequest(http.MethodGet, "/api/files/public/users/user-2/profile-photo/a.png", ""))
		require.NoError(t, err)

		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "https://store/bucket/a.png?X-Amz-Signature=abc", resp.Header.Get("Location"))
		assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	})

	t.Run("not accessible", func(t *testing.T) {
		svc := new(serviceMocks.MockFileAccessService)
		svc.On("ResolveDownloadURL", mock.Anything, "user-1", "documents/user-2/d.pdf").
			Return("", fmt.Errorf("%w: file", service.ErrNotFound))

		resp, err := newApp(svc).Test(jsonRequest(http.MethodGet, "/api/files/documents/user-2/d.pdf", ""))
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "file not found", decodeError(t, resp).Error.Message)
	})
}
