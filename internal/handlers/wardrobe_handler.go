package handlers

import (
	"sirwa/internal/models"
	"sirwa/internal/services"
	"sirwa/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// WardrobeHandler handles HTTP requests for wardrobe items.
type WardrobeHandler struct {
	service      *services.RecordService[models.WardrobeItem]
	validator    *validation.Validator
	defaultLimit int64
}

// NewWardrobeHandler creates a new WardrobeHandler.
func NewWardrobeHandler(service *services.RecordService[models.WardrobeItem], v *validation.Validator, defaultLimit int64) *WardrobeHandler {
	return &WardrobeHandler{
		service:      service,
		validator:    v,
		defaultLimit: defaultLimit,
	}
}

// RegisterRoutes registers the wardrobe routes with the Fiber app.
func (h *WardrobeHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/wardrobe", h.HandleCreateItem)
	router.Get("/wardrobe", h.HandleListItems)
}

// HandleCreateItem stores a new wardrobe item.
func (h *WardrobeHandler) HandleCreateItem(c *fiber.Ctx) error {
	return createRecord(c, h.validator, h.service)
}

// HandleListItems lists wardrobe items.
func (h *WardrobeHandler) HandleListItems(c *fiber.Ctx) error {
	return listRecords(c, h.service, h.defaultLimit)
}
