package routes

import (
	"github.com/davidkwan/streakmates-api/internal/config"
	"github.com/davidkwan/streakmates-api/internal/handlers"
	"github.com/davidkwan/streakmates-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func Setup(app *fiber.App, cfg *config.Config) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Post("/google", handlers.GoogleLogin)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)
	protected.Get("/users/:id", handlers.GetUserProfile)

	groups := protected.Group("/groups")
	groups.Get("/", handlers.GetGroups)
	groups.Post("/", handlers.CreateGroup)
	groups.Get("/:id", handlers.GetGroup)
	groups.Put("/:id", handlers.UpdateGroup)
	groups.Delete("/:id", handlers.DeleteGroup)

	// Group invites & members
	groups.Post("/:id/invites", handlers.CreateInvite)
	groups.Get("/:id/members", handlers.GetMembers)
	groups.Delete("/:id/members/:userId", handlers.RemoveMember)
	groups.Post("/:id/leave", handlers.LeaveGroup)

	// Check-ins and the streak itself
	groups.Get("/:id/checkins", handlers.GetGroupCheckIns)
	groups.Get("/:id/streak", handlers.GetGroupStreak)
	groups.Get("/:id/risk", handlers.CheckGroupRisk)

	// Group activity feed
	groups.Get("/:id/activity", handlers.GetGroupActivity)

	// A single check-in can target several groups at once
	protected.Post("/checkins", handlers.CreateCheckIn)

	// Join group via invite code
	protected.Post("/invites/:code/join", handlers.JoinGroup)

	// Monthly streak insurance (premium)
	protected.Post("/insurance", handlers.ApplyInsurance)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllRead)

	// Device token for push notifications
	protected.Post("/device-token", handlers.RegisterDeviceToken)

	// File upload
	protected.Post("/upload/avatar", handlers.UploadAvatar)

	// Server-to-server: scheduler and billing callbacks
	internal := api.Group("/internal", middleware.InternalOnly(cfg.InternalSecret))
	internal.Post("/sweep", handlers.TriggerSweep)
	internal.Post("/insurance-reset", handlers.ResetInsurance)
	internal.Post("/premium", handlers.SetPremium)

	// WebSocket for real-time group updates
	app.Use("/ws", handlers.WebSocketUpgrade())
	app.Get("/ws/groups/:id", websocket.New(handlers.HandleWebSocket))
}
