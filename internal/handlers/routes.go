package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the dashboard API under /api/v1.
func RegisterRoutes(app *fiber.App, dashboardHandler *DashboardHandler, uploadHandler *UploadHandler) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Get("/sources", dashboardHandler.HandleSources)
	api.Get("/pairs", dashboardHandler.HandlePairs)
	api.Get("/sources/:source/pairs/:pair", dashboardHandler.HandleGetPair)
	api.Post("/sources/:source/reload", dashboardHandler.HandleReload)
	api.Post("/sources/:source/upload", uploadHandler.HandleUpload)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Compliance Dashboard API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/sources",
				"GET /api/v1/pairs",
				"GET /api/v1/sources/:source/pairs/:pair",
				"POST /api/v1/sources/:source/reload",
				"POST /api/v1/sources/:source/upload",
			},
		})
	})
}

// ErrorHandler renders errors that escape a handler as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
