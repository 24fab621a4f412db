package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"platformapi/internal/service"
)

type photoUploadRequest struct {
	ContentType string `json:"content_type"`
}

type photoConfirmRequest struct {
	StorageKey string `json:"storage_key"`
}

// GetMe godoc
// @Summary  The caller's profile
// @Tags     users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} model.User
// @Failure  404 {object} errorPayload
// @Router   /api/me [get]
func GetMe(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.GetMe(c.UserContext(), principal(c).UserID)
		if err != nil {
			return writeServiceError(c, err, "user")
		}
		return c.JSON(u)
	}
}

// BeginPhotoUpload godoc
// @Summary  Start a profile photo upload
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body     photoUploadRequest true "photo content type"
// @Success  201  {object} service.PhotoUploadTicket
// @Failure  400  {object} errorPayload
// @Router   /api/me/photo/upload-url [post]
func BeginPhotoUpload(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req photoUploadRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		ticket, err := svc.BeginPhotoUpload(c.UserContext(), principal(c).UserID, req.ContentType)
		if err != nil {
			return writeServiceError(c, err, "user")
		}
		return c.Status(fiber.StatusCreated).JSON(ticket)
	}
}

// ConfirmPhotoUpload godoc
// @Summary  Point the caller's profile image at an uploaded photo
// @Tags     users
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body     photoConfirmRequest true "uploaded object key"
// @Success  200  {object} model.User
// @Failure  404  {object} errorPayload
// @Router   /api/me/photo/confirm [post]
func ConfirmPhotoUpload(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req photoConfirmRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		u, err := svc.ConfirmPhotoUpload(c.UserContext(), principal(c).UserID, req.StorageKey)
		if err != nil {
			return writeServiceError(c, err, "photo")
		}
		return c.JSON(u)
	}
}

// ListUsers godoc
// @Summary  List users (admin)
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    search         query string false "matches name or email"
// @Param    role           query string false "patient, doctor or admin"
// @Param    email_verified query bool   false "filter by verification"
// @Param    limit          query int    false "page size" default(20)
// @Param    offset         query int    false "page offset" default(0)
// @Success  200 {object} service.UserListResult
// @Failure  403 {object} errorPayload
// @Router   /api/admin/users [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, code := page(c, 20)
		if code != "" {
			return writeError(c, fiber.StatusBadRequest, code, "invalid pagination")
		}

		f := service.UserListFilter{
			Search: c.Query("search"),
			Role:   c.Query("role"),
			Limit:  limit,
			Offset: offset,
		}
		if raw := c.Query("email_verified"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_EMAIL_VERIFIED", "email_verified must be true or false")
			}
			f.EmailVerified = &v
		}

		res, err := svc.ListUsers(c.UserContext(), f)
		if err != nil {
			return writeServiceError(c, err, "user")
		}
		return c.JSON(res)
	}
}
