package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/internal/api/presenters"
	"Macho-AI-Backend/pkg/snapshot"
)

type (
	SnapshotHandler interface {
		Export(c *fiber.Ctx) error
		Import(c *fiber.Ctx) error
		GetExports(c *fiber.Ctx) error
		Share(c *fiber.Ctx) error
	}

	snapshotHandler struct {
		snapshotService snapshot.SnapshotService
		validator       *validator.Validate
	}
)

func NewSnapshotHandler(snapshotService snapshot.SnapshotService, validator *validator.Validate) SnapshotHandler {
	return &snapshotHandler{
		snapshotService: snapshotService,
		validator:       validator,
	}
}

func (h *snapshotHandler) Export(c *fiber.Ctx) error {
	mode := c.Query("mode", snapshot.ModeFull)

	document, res, err := h.snapshotService.Export(c.Context(), mode)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownSnapshotMode) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExportSnapshot, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedExportSnapshot, err)
	}

	if c.Query("download") == "true" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="macho-ai-snapshot.json"`)
		return c.Send(document)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"export":   res,
		"document": string(document),
	}, fiber.StatusOK, domain.MessageSuccessExportSnapshot)
}

func (h *snapshotHandler) Import(c *fiber.Ctx) error {
	req := new(domain.ImportSnapshotRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.snapshotService.Import(c.Context(), req.Document); err != nil {
		if errors.Is(err, domain.ErrSnapshotCorrupt) {
			return presenters.ErrorResponse(c, fiber.StatusUnprocessableEntity, domain.MessageFailedImportSnapshot, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedImportSnapshot, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessImportSnapshot)
}

func (h *snapshotHandler) GetExports(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	exports, count, err := h.snapshotService.GetExports(c.Context(), page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedListSnapshots, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"exports": exports,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessListSnapshots)
}

func (h *snapshotHandler) Share(c *fiber.Ctx) error {
	req := new(domain.ShareSnapshotRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.snapshotService.Share(c.Context(), req.Email); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedShareSnapshot, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessShareSnapshot)
}
