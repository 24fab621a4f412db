package handler

import (
	"github.com/gofiber/fiber/v2"

	"platformapi/internal/service"
)

// GetFile godoc
// @Summary  Redirect to a short-lived download URL for a stored file
// @Tags     files
// @Security BearerAuth
// @Param    key path string true "storage key"
// @Success  302
// @Failure  404 {object} errorPayload
// @Router   /api/files/{key} [get]
func GetFile(svc service.FileAccessService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		url, err := svc.ResolveDownloadURL(c.UserContext(), principal(c).UserID, c.Params("*"))
		if err != nil {
			return writeServiceError(c, err, "file")
		}
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Redirect(url, fiber.StatusFound)
	}
}
