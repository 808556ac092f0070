package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"Macho-AI-Backend/domain"
	"Macho-AI-Backend/internal/api/presenters"
	"Macho-AI-Backend/pkg/creature"
)

type (
	CreatureHandler interface {
		Feed(c *fiber.Ctx) error
		GetCreature(c *fiber.Ctx) error
		GetHistory(c *fiber.Ctx) error
		Reset(c *fiber.Ctx) error
		GetMealScans(c *fiber.Ctx) error
	}

	creatureHandler struct {
		creatureService creature.CreatureService
		validator       *validator.Validate
	}
)

func NewCreatureHandler(creatureService creature.CreatureService, validator *validator.Validate) CreatureHandler {
	return &creatureHandler{
		creatureService: creatureService,
		validator:       validator,
	}
}

func (h *creatureHandler) Feed(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	files := form.File["meals"]
	if len(files) == 0 {
		files = form.File["meal"]
	}
	if len(files) == 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFeedCreature, domain.ErrNoFilesUploaded)
	}

	items := make([]domain.FeedItem, 0, len(files))
	for _, file := range files {
		data, err := readFormFile(file)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFeedCreature, err)
		}
		items = append(items, domain.FeedItem{
			FileName: file.Filename,
			MimeType: file.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	res, err := h.creatureService.Feed(c.Context(), items)
	if err != nil {
		if errors.Is(err, domain.ErrNoFilesUploaded) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedFeedCreature, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedFeedCreature, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessFeedCreature)
}

func (h *creatureHandler) GetCreature(c *fiber.Ctx) error {
	res := h.creatureService.GetState(c.Context())
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetCreature)
}

func (h *creatureHandler) GetHistory(c *fiber.Ctx) error {
	res := h.creatureService.GetHistory(c.Context())
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func (h *creatureHandler) Reset(c *fiber.Ctx) error {
	res := h.creatureService.Reset(c.Context())
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessResetCreature)
}

func (h *creatureHandler) GetMealScans(c *fiber.Ctx) error {
	status := c.Query("status", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	scans, count, err := h.creatureService.GetMealScans(c.Context(), status, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"scans": scans,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetHistory)
}

func readFormFile(file *multipart.FileHeader) ([]byte, error) {
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
