package handler

import (
	"github.com/gofiber/fiber/v2"

	"platformapi/internal/service"
)

type consentRequest struct {
	Version string `json:"consent_version"`
	Text    string `json:"consent_text"`
	Type    string `json:"consent_type"`
}

// RecordConsent godoc
// @Summary  Record that the caller accepted a consent text
// @Tags     consents
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body     consentRequest true "accepted consent"
// @Success  201  {object} model.ConsentRecord
// @Failure  400  {object} errorPayload
// @Router   /api/consents [post]
func RecordConsent(svc service.ConsentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req consentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		client := service.ClientFromContext(c.UserContext())
		rec, err := svc.RecordConsent(c.UserContext(), service.ConsentInput{
			UserID:    principal(c).UserID,
			Version:   req.Version,
			Text:      req.Text,
			Type:      req.Type,
			IPAddress: client.IPAddress,
			UserAgent: client.UserAgent,
		})
		if err != nil {
			return writeServiceError(c, err, "consent")
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}
