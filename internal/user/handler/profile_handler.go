package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"github.com/mile-mijatovic/address-book/internal/middleware"
	"github.com/mile-mijatovic/address-book/internal/user/dto"
	"github.com/mile-mijatovic/address-book/internal/user/service"
	"github.com/mile-mijatovic/address-book/internal/validation"
)

const (
	msgImageUploaded  = "Image was uploaded successfully."
	msgImageReset     = "Image was removed successfully."
	msgProfileDeleted = "Your profile has been successfully deleted."
)

type ProfileHandler struct {
	userService *service.UserService
}

func NewProfileHandler(userService *service.UserService) *ProfileHandler {
	return &ProfileHandler{userService: userService}
}

func (h *ProfileHandler) GetInfo(c *fiber.Ctx) error {
	user, err := h.userService.GetInfo(c.Context(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// UploadImage accepts a multipart form with a single "image" file.
func (h *ProfileHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apperror.ErrImageNotProvided
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	contentType := fileHeader.Header.Get(fiber.HeaderContentType)

	err = h.userService.UploadImage(c.Context(), middleware.UserID(c),
		fileHeader.Filename, contentType, data)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgImageUploaded,
	})
}

func (h *ProfileHandler) ResetImage(c *fiber.Ctx) error {
	if err := h.userService.ResetImage(c.Context(), middleware.UserID(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgImageReset,
	})
}

func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var input dto.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	err := h.userService.ChangePassword(c.Context(), middleware.UserID(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgPasswordReset,
	})
}

func (h *ProfileHandler) CloseProfile(c *fiber.Ctx) error {
	if err := h.userService.CloseProfile(c.Context(), middleware.UserID(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgProfileDeleted,
	})
}
