package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"imoveisuniao_backend/internal/model"
	"imoveisuniao_backend/internal/service"
	"imoveisuniao_backend/pkg/utils/jwt"
)

type LeadController struct {
	leads *service.LeadService
}

func NewLeadController(leads *service.LeadService) *LeadController {
	return &LeadController{leads: leads}
}

// Create records a public inquiry against a property.
func (ctl *LeadController) Create(c *fiber.Ctx) error {
	propertyID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	input := new(service.LeadInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.Email == "" || input.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name, email and phone are required",
		})
	}

	lead, err := ctl.leads.Create(c.Context(), propertyID, *input)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create lead",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your inquiry has been sent successfully.",
		"lead_id": lead.ID,
	})
}

func (ctl *LeadController) List(c *fiber.Ctx) error {
	filters := service.LeadFilters{
		Status: c.Query("status"),
	}
	if propertyID := c.QueryInt("property_id", 0); propertyID > 0 {
		filters.PropertyID = uint(propertyID)
	}

	leads, err := ctl.leads.List(c.Context(), filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch leads",
		})
	}

	return c.JSON(leads)
}

func (ctl *LeadController) UpdateStatus(c *fiber.Ctx) error {
	leadID, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lead ID",
		})
	}

	input := struct {
		Status string `json:"status"`
		Assign bool   `json:"assign"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var assignedTo *uint
	if input.Assign {
		if claims, ok := c.Locals("user").(*jwt.Claims); ok {
			assignedTo = &claims.UserID
		}
	}

	lead, err := ctl.leads.UpdateStatus(c.Context(), leadID, model.LeadStatus(input.Status), assignedTo)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLeadStatus) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid status value",
				"valid_statuses": []string{
					string(model.LeadStatusNew),
					string(model.LeadStatusContacted),
					string(model.LeadStatusQualified),
					string(model.LeadStatusDisqualified),
				},
			})
		}
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Lead not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update lead status",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Lead status updated successfully",
		"lead":    lead,
	})
}
