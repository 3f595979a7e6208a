package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *ContactHandler, requireAuth fiber.Handler) {
	contacts := app.Group("/api/contacts", requireAuth)
	contacts.Get("/", h.List)
	contacts.Get("/:contactId", h.GetByID)
	contacts.Post("/", h.Add)
	contacts.Patch("/:contactId", h.Update)
	contacts.Delete("/:contactId", h.Delete)
}
