package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"github.com/mile-mijatovic/address-book/internal/contact/domain"
	"github.com/mile-mijatovic/address-book/internal/contact/dto"
	"github.com/mile-mijatovic/address-book/internal/contact/service"
	"github.com/mile-mijatovic/address-book/internal/middleware"
	"github.com/mile-mijatovic/address-book/internal/validation"
)

const (
	msgContactAdded    = "Contact was added successfully."
	msgContactUpdated  = "Contact was updated successfully."
	msgContactDeleted  = "Contact was deleted successfully."
	msgFavoriteAdded   = "Contact was added to favorites."
	msgFavoriteRemoved = "Contact was removed from favorites."

	defaultPage  = 1
	defaultLimit = 5
)

type ContactHandler struct {
	contactService *service.ContactService
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	ownerID := middleware.UserID(c)

	page := queryInt(c, "page", defaultPage)
	limit := queryInt(c, "limit", defaultLimit)

	filter := domain.Filter{
		FirstName:       c.Query("firstName"),
		LastName:        c.Query("lastName"),
		TelephoneNumber: c.Query("telephoneNumber"),
		MobileNumber:    c.Query("mobileNumber"),
		Fax:             c.Query("fax"),
		Email:           c.Query("email"),
	}

	result, err := h.contactService.List(c.Context(), ownerID, page, limit, filter)
	if err != nil {
		return err
	}

	if len(result.Contacts) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":  true,
			"contacts": []dto.ContactOutput{},
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"pagination": result.Pagination,
		"contacts":   result.Contacts,
	})
}

func (h *ContactHandler) GetByID(c *fiber.Ctx) error {
	contactID, err := contactID(c)
	if err != nil {
		return err
	}

	contact, err := h.contactService.GetByID(c.Context(), contactID, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"contact": contact,
	})
}

func (h *ContactHandler) Add(c *fiber.Ctx) error {
	var input dto.AddContactInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	_, err := h.contactService.Add(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": msgContactAdded,
	})
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	contactID, err := contactID(c)
	if err != nil {
		return err
	}

	var input dto.UpdateContactInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	_, err = h.contactService.Update(c.Context(), middleware.UserID(c), contactID, input.ToUpdate())
	if err != nil {
		return err
	}

	// The response message reflects a favorite toggle when the request
	// carried one.
	message := msgContactUpdated
	if input.Favorite != nil {
		if *input.Favorite {
			message = msgFavoriteAdded
		} else {
			message = msgFavoriteRemoved
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	contactID, err := contactID(c)
	if err != nil {
		return err
	}

	if err := h.contactService.Delete(c.Context(), contactID, middleware.UserID(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgContactDeleted,
	})
}

func contactID(c *fiber.Ctx) (string, error) {
	id := c.Params("contactId")
	if _, err := uuid.Parse(id); err != nil {
		return "", apperror.NewValidation("Contact id must be a valid identifier.")
	}
	return id, nil
}

// queryInt parses a query parameter, falling back to def when absent and
// to 1 when the value is malformed or non-positive.
func queryInt(c *fiber.Ctx, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}

	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 {
		return 1
	}
	return val
}
