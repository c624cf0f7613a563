package handlers

import (
	"strconv"

	"sirwa/internal/models"
	"sirwa/internal/services"
	"sirwa/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// createRecord validates the request body as T and stores it.
func createRecord[T models.Record](c *fiber.Ctx, v *validation.Validator, service *services.RecordService[T]) error {
	record, err := validation.Parse[T](v, c.Body())
	if err != nil {
		return err
	}

	id, err := service.Create(c.UserContext(), record)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id})
}

// listRecords returns up to ?limit= stored records of T.
func listRecords[T models.Record](c *fiber.Ctx, service *services.RecordService[T], defaultLimit int64) error {
	limit, err := parseLimit(c, defaultLimit)
	if err != nil {
		return err
	}

	docs, err := service.List(c.UserContext(), limit)
	if err != nil {
		return err
	}
	return c.JSON(docs)
}

func parseLimit(c *fiber.Ctx, defaultLimit int64) (int64, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, validation.QueryError("limit", "value is not a valid integer", "type_error.integer")
	}
	if limit < 1 {
		return 0, validation.QueryError("limit", "ensure this value is greater than or equal to 1", "value_error.number.not_ge")
	}
	return limit, nil
}
