package handler

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"platformapi/internal/model"
	"platformapi/internal/service"
)

type putSettingRequest struct {
	Type  model.SettingType `json:"type"`
	Value json.RawMessage   `json:"value" swaggertype:"object"`
}

// ListSettings godoc
// @Summary  List platform settings (admin), most recently updated first
// @Tags     admin
// @Produce  json
// @Security BearerAuth
// @Param    limit  query int false "page size" default(50)
// @Param    offset query int false "page offset" default(0)
// @Success  200 {object} service.SettingListResult
// @Router   /api/admin/settings [get]
func ListSettings(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, code := page(c, 50)
		if code != "" {
			return writeError(c, fiber.StatusBadRequest, code, "invalid pagination")
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err, "setting")
		}
		return c.JSON(res)
	}
}

// PutSetting godoc
// @Summary  Create or replace a platform setting (admin)
// @Tags     admin
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    key  path     string            true "setting key"
// @Param    body body     putSettingRequest true "typed value"
// @Success  200  {object} model.Setting
// @Failure  400  {object} errorPayload
// @Router   /api/admin/settings/{key} [put]
func PutSetting(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req putSettingRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		value, err := model.DecodeSettingValue(req.Type, req.Value)
		if err != nil {
			if errors.Is(err, model.ErrSettingValue) {
				return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", detail(err, model.ErrSettingValue))
			}
			return writeServiceError(c, err, "setting")
		}

		s, err := svc.Write(c.UserContext(), c.Params("key"), value)
		if err != nil {
			return writeServiceError(c, err, "setting")
		}
		return c.JSON(s)
	}
}

// DeleteSetting godoc
// @Summary  Delete a platform setting (admin)
// @Tags     admin
// @Security BearerAuth
// @Param    key path string true "setting key"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /api/admin/settings/{key} [delete]
func DeleteSetting(svc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("key")); err != nil {
			// Admin callers see which key was missing.
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", detail(err, service.ErrNotFound))
			}
			return writeServiceError(c, err, "setting")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
