package handlers

import (
	"sirwa/internal/models"
	"sirwa/internal/services"
	"sirwa/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for reviews.
type ReviewHandler struct {
	service      *services.RecordService[models.Review]
	validator    *validation.Validator
	defaultLimit int64
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.RecordService[models.Review], v *validation.Validator, defaultLimit int64) *ReviewHandler {
	return &ReviewHandler{
		service:      service,
		validator:    v,
		defaultLimit: defaultLimit,
	}
}

// RegisterRoutes registers the review routes with the Fiber app.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/reviews", h.HandleCreateReview)
	router.Get("/reviews", h.HandleListReviews)
}

// HandleCreateReview stores a new review.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	return createRecord(c, h.validator, h.service)
}

// HandleListReviews lists reviews.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	return listRecords(c, h.service, h.defaultLimit)
}
