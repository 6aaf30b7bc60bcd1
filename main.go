package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/davidkwan/streakmates-api/internal/config"
	"github.com/davidkwan/streakmates-api/internal/database"
	"github.com/davidkwan/streakmates-api/internal/handlers"
	"github.com/davidkwan/streakmates-api/internal/logger"
	"github.com/davidkwan/streakmates-api/internal/middleware"
	"github.com/davidkwan/streakmates-api/internal/routes"
	"github.com/davidkwan/streakmates-api/internal/services"
	"github.com/davidkwan/streakmates-api/internal/streak"
)

func main() {
	// .env is optional; real deployments set the environment directly
	godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		panic(err)
	}
	defer logger.Logger.Sync()

	middleware.Init(cfg.JWTSecret)

	if err := database.Connect(cfg); err != nil {
		logger.Sugar.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(); err != nil {
		logger.Sugar.Fatalf("migration failed: %v", err)
	}

	services.InitPush(cfg.FCMServiceAccount)

	engine := streak.New(
		streak.NewGormStore(database.DB),
		services.NewRiskNotifier(database.DB),
		streak.WithLogger(logger.Sugar),
	)
	handlers.InitStreaks(engine)

	app := fiber.New(fiber.Config{
		AppName: "StreakMates API",
	})

	app.Use(recover.New())
	app.Use(cors.New())

	// Uploaded avatars are served straight from disk
	app.Static("/uploads", "./uploads")

	routes.Setup(app, cfg)

	logger.Sugar.Infof("starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Sugar.Fatalf("server stopped: %v", err)
	}
}
