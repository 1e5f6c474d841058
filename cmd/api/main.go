package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/compliance-dashboard/internal/bootstrap"
	"alfredoptarigan/compliance-dashboard/internal/config"
	"alfredoptarigan/compliance-dashboard/internal/handlers"
	"alfredoptarigan/compliance-dashboard/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	components, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s source backend: %v", cfg.Sources.Backend, err)
	}

	// Warm the source caches in the background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher := services.NewRefresher(
		components.Dashboard,
		cfg.Refresh.Workers,
		cfg.Refresh.Interval,
	)
	refresher.Start(ctx)

	// Initialize Handlers
	dashboardHandler := handlers.NewDashboardHandler(components.Dashboard)
	uploadHandler := handlers.NewUploadHandler(
		components.Dashboard,
		components.Writer,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Compliance Dashboard API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.RegisterRoutes(app, dashboardHandler, uploadHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		refresher.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📋 Result sources: %v\n", components.Dashboard.Sources())

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
