package handler

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the auth and profile endpoints. requireAuth is
// the session gate applied to every protected route.
func RegisterRoutes(app *fiber.App, auth *AuthHandler, profile *ProfileHandler, requireAuth fiber.Handler) {
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", auth.Register)
	authGroup.Post("/login", auth.Login)
	authGroup.Post("/forgot-password", auth.ForgotPassword)
	authGroup.Post("/reset-password", auth.ResetPassword)
	authGroup.Post("/logout", requireAuth, auth.Logout)

	profileGroup := app.Group("/api/profile", requireAuth)
	profileGroup.Get("/", profile.GetInfo)
	profileGroup.Patch("/", profile.UploadImage)
	profileGroup.Patch("/reset-image", profile.ResetImage)
	profileGroup.Patch("/change-password", profile.ChangePassword)
	profileGroup.Delete("/", profile.CloseProfile)
}
