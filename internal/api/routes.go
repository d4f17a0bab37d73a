package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.CurrentUser)

	medications := api.Group("/medications", handler.AuthRequired)
	medications.Get("", handler.ListMedications)
	medications.Post("", handler.CreateMedication)
	medications.Patch("/:id", handler.RenameMedication)
	medications.Delete("/:id", handler.DeleteMedication)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Get("", handler.ListLogs)
	logs.Post("/toggle", handler.ToggleLog)

	api.Get("/week", handler.AuthRequired, handler.GetWeek)

	app.Use(handler.NotFound)
}
