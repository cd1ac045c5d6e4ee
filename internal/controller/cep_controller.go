package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"imoveisuniao_backend/pkg/utils/cep"
)

type CEPController struct{}

func NewCEPController() *CEPController {
	return &CEPController{}
}

// Lookup resolves a Brazilian postal code to its structured address.
func (ctl *CEPController) Lookup(c *fiber.Ctx) error {
	address, err := cep.Lookup(c.Params("cep"))
	if err != nil {
		if errors.Is(err, cep.ErrInvalidCEP) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, cep.ErrCEPNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "CEP not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not look up CEP",
		})
	}

	return c.JSON(address)
}
