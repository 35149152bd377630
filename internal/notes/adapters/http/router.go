package http

import (
	"github.com/gofiber/fiber/v3"

	"technotes/internal/notes/adapters/http/middleware"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
// Идентификатор для PATCH и DELETE передаётся в теле запроса,
// как в исходном интерфейсе контроллера.
func SetupRouter(app *fiber.App, noteUseCase NoteUseCase) {
	notesHandler := NewHandler(noteUseCase)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Patch("/", notesHandler.UpdateNote)
	notesRoutes.Delete("/", notesHandler.DeleteNote)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
