package handlers

import (
	"sirwa/internal/models"
	"sirwa/internal/services"
	"sirwa/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// KycHandler accepts luxury KYC submissions. Submissions are write-only.
type KycHandler struct {
	service   *services.RecordService[models.LuxuryKyc]
	validator *validation.Validator
}

// NewKycHandler creates a new KycHandler.
func NewKycHandler(service *services.RecordService[models.LuxuryKyc], v *validation.Validator) *KycHandler {
	return &KycHandler{
		service:   service,
		validator: v,
	}
}

// RegisterRoutes registers the KYC route with the Fiber app.
func (h *KycHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/luxury-kyc", h.HandleSubmitKyc)
}

// HandleSubmitKyc stores a new KYC submission.
func (h *KycHandler) HandleSubmitKyc(c *fiber.Ctx) error {
	return createRecord(c, h.validator, h.service)
}
