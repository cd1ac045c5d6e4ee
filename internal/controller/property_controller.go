package controller

import (
	"errors"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"imoveisuniao_backend/internal/service"
	"imoveisuniao_backend/pkg/utils/jwt"
	"imoveisuniao_backend/pkg/utils/validation"
)

type PropertyController struct {
	properties *service.PropertyService
}

func NewPropertyController(properties *service.PropertyService) *PropertyController {
	return &PropertyController{properties: properties}
}

func validationFailed(c *fiber.Ctx, errs validation.ValidationErrors) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errs,
	})
}

// Create handles the multipart submission: form fields plus up to 10 images.
func (ctl *PropertyController) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid multipart form",
		})
	}

	input, verrs := validation.ParseSubmission(form.Value)
	if verrs != nil {
		return validationFailed(c, verrs)
	}

	var files []*multipart.FileHeader
	if form.File != nil {
		files = form.File["images"]
	}

	var userID *uint
	if claims, ok := c.Locals("user").(*jwt.Claims); ok {
		userID = &claims.UserID
	}

	property, err := ctl.properties.Create(c.Context(), input, userID, files)
	if err != nil {
		var errs validation.ValidationErrors
		if errors.As(err, &errs) {
			return validationFailed(c, errs)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create property",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(property)
}

// FindAll lists the admin catalog: every status, windowed.
func (ctl *PropertyController) FindAll(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := ctl.properties.FindAll(c.Context(), page, limit, false)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(result)
}

// FindPublic lists only active properties for the public catalog.
func (ctl *PropertyController) FindPublic(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	result, err := ctl.properties.FindAll(c.Context(), page, limit, true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch properties",
		})
	}

	return c.JSON(result)
}

func (ctl *PropertyController) FindOne(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	property, err := ctl.properties.FindOne(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch property",
		})
	}

	return c.JSON(property)
}

func (ctl *PropertyController) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	input := new(service.UpdatePropertyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	property, err := ctl.properties.Update(c.Context(), id, input)
	if err != nil {
		var errs validation.ValidationErrors
		if errors.As(err, &errs) {
			return validationFailed(c, errs)
		}
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update property",
		})
	}

	return c.JSON(property)
}

func (ctl *PropertyController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	if err := ctl.properties.Remove(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete property",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type saveMediaInput struct {
	URLs []string `json:"urls"`
}

func (ctl *PropertyController) SaveMedia(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid property ID",
		})
	}

	input := new(saveMediaInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if len(input.URLs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No URLs provided",
		})
	}

	media, err := ctl.properties.SaveMedia(c.Context(), id, input.URLs)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Property not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save media",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(media)
}

func (ctl *PropertyController) DeleteMedia(c *fiber.Ctx) error {
	id, err := parseID(c, "media_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid media ID",
		})
	}

	if err := ctl.properties.DeleteMedia(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Media not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete media",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(param), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
