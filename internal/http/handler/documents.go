package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"platformapi/internal/service"
)

// DocumentFolder is the storage folder holding a user's documents.
func DocumentFolder(userID string) string {
	return "documents/" + userID
}

// BeginDocumentUpload godoc
// @Summary  Start a direct-to-storage document upload
// @Tags     documents
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body     service.UploadDescriptor true "file to upload"
// @Success  201  {object} service.UploadTicket
// @Failure  400  {object} errorPayload
// @Router   /api/documents [post]
func BeginDocumentUpload(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var d service.UploadDescriptor
		if err := c.BodyParser(&d); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		p := principal(c)
		d.Folder = DocumentFolder(p.UserID)

		ticket, err := svc.BeginUpload(c.UserContext(), p.UserID, d)
		if err != nil {
			return writeServiceError(c, err, "document")
		}
		return c.Status(fiber.StatusCreated).JSON(ticket)
	}
}

// ConfirmDocumentUpload godoc
// @Summary  Confirm that the client finished uploading a document
// @Tags     documents
// @Produce  json
// @Security BearerAuth
// @Param    id  path     string true "document id"
// @Success  200 {object} model.Document
// @Failure  404 {object} errorPayload
// @Failure  412 {object} errorPayload
// @Router   /api/documents/{id}/confirm [post]
func ConfirmDocumentUpload(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.ConfirmUpload(c.UserContext(), principal(c).UserID, id)
		if err != nil {
			return writeServiceError(c, err, "document")
		}
		return c.JSON(doc)
	}
}

// ListDocuments godoc
// @Summary  List the caller's documents, newest first
// @Tags     documents
// @Produce  json
// @Security BearerAuth
// @Param    document_type query string false "filter by document type"
// @Param    status        query string false "uploading, uploaded or failed"
// @Success  200 {object} map[string][]model.DocumentWithURL
// @Router   /api/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := service.DocumentFilter{
			DocumentType: c.Query("document_type"),
			Status:       c.Query("status"),
		}
		docs, err := svc.ListUploads(c.UserContext(), principal(c).UserID, filter)
		if err != nil {
			return writeServiceError(c, err, "document")
		}
		return c.JSON(fiber.Map{"data": docs})
	}
}

// GetDocument godoc
// @Summary  Get one of the caller's documents
// @Tags     documents
// @Produce  json
// @Security BearerAuth
// @Param    id  path     string true "document id"
// @Success  200 {object} model.DocumentWithURL
// @Failure  404 {object} errorPayload
// @Router   /api/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.GetUpload(c.UserContext(), principal(c).UserID, id)
		if err != nil {
			return writeServiceError(c, err, "document")
		}
		return c.JSON(doc)
	}
}

// DeleteDocument godoc
// @Summary  Delete one of the caller's documents
// @Tags     documents
// @Security BearerAuth
// @Param    id path string true "document id"
// @Success  204
// @Failure  404 {object} errorPayload
// @Router   /api/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := documentID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.DeleteUpload(c.UserContext(), principal(c).UserID, id); err != nil {
			return writeServiceError(c, err, "document")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func documentID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}
