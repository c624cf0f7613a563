package handlers

import (
	"sirwa/internal/models"
	"sirwa/internal/services"
	"sirwa/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PickupHandler accepts pickup requests. There is no list endpoint.
type PickupHandler struct {
	service   *services.RecordService[models.PickupRequest]
	validator *validation.Validator
}

// NewPickupHandler creates a new PickupHandler.
func NewPickupHandler(service *services.RecordService[models.PickupRequest], v *validation.Validator) *PickupHandler {
	return &PickupHandler{
		service:   service,
		validator: v,
	}
}

// RegisterRoutes registers the pickup route with the Fiber app.
func (h *PickupHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/pickup", h.HandleCreatePickup)
}

// HandleCreatePickup stores a new pickup request.
func (h *PickupHandler) HandleCreatePickup(c *fiber.Ctx) error {
	return createRecord(c, h.validator, h.service)
}
