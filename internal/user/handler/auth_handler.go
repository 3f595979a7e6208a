package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mile-mijatovic/address-book/internal/apperror"
	"github.com/mile-mijatovic/address-book/internal/user/dto"
	"github.com/mile-mijatovic/address-book/internal/user/service"
	"github.com/mile-mijatovic/address-book/internal/validation"
)

const (
	msgRegistered    = "You have successfully registered."
	msgLoggedIn      = "You have successfully logged in."
	msgLoggedOut     = "You have successfully logged out."
	msgResetEmail    = "If that email address is in our database, we will send you an email to reset your password."
	msgPasswordReset = "Password has been successfully reset."
)

type AuthHandler struct {
	userService *service.UserService
	sessionName string
	sessionTTL  time.Duration
}

func NewAuthHandler(userService *service.UserService, sessionName string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessionName: sessionName,
		sessionTTL:  sessionTTL,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	if err := h.userService.Register(c.Context(), input); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgRegistered,
	})
}

// Login verifies credentials and stores the session token in an HttpOnly
// cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	token, err := h.userService.Authenticate(c.Context(), input)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.sessionName,
		Value:    token,
		Expires:  time.Now().Add(h.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgLoggedIn,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.sessionName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgLoggedOut,
	})
}

// ForgotPassword always reports success so the endpoint cannot be used
// to probe which addresses are registered.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var input dto.ForgotPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	if err := h.userService.ForgotPassword(c.Context(), input.Email); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgResetEmail,
	})
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apperror.ErrInvalidResetToken
	}

	var input dto.ResetPasswordInput
	if err := c.BodyParser(&input); err != nil {
		return apperror.NewValidation("Invalid request body.")
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	if err := h.userService.ResetPassword(c.Context(), token, input.NewPassword); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": msgPasswordReset,
	})
}
