package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"imoveisuniao_backend/internal/service"
)

type PropertyTypeController struct {
	types *service.TypeService
}

func NewPropertyTypeController(types *service.TypeService) *PropertyTypeController {
	return &PropertyTypeController{types: types}
}

func (ctl *PropertyTypeController) List(c *fiber.Ctx) error {
	types, err := ctl.types.ListTypes(c.Context())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No property types found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property types",
		})
	}

	return c.JSON(types)
}

func (ctl *PropertyTypeController) ListSubtypes(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property type ID",
		})
	}

	subtypes, err := ctl.types.ListSubtypes(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No subtypes found for this property type",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch subtypes",
		})
	}

	return c.JSON(subtypes)
}
