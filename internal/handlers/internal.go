package handlers

import (
	"github.com/davidkwan/streakmates-api/internal/database"
	"github.com/davidkwan/streakmates-api/internal/logger"
	"github.com/davidkwan/streakmates-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Server-to-server endpoints. All of these sit behind the shared-secret
// middleware; the scheduler (cron, or whatever the deployment uses) calls
// them on a fixed cadence.

// TriggerSweep runs one proactive at-risk sweep and returns its counters
func TriggerSweep(c *fiber.Ctx) error {
	res, err := Streaks.Sweep()
	if err != nil {
		logger.Sugar.Errorw("sweep failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Sweep failed",
		})
	}
	return c.JSON(res)
}

// ResetInsurance clears every user's monthly insurance grant. Scheduled
// monthly, independent of the sweep; streak records are untouched.
func ResetInsurance(c *fiber.Ctx) error {
	n, err := Streaks.ResetAllInsurance()
	if err != nil {
		logger.Sugar.Errorw("insurance reset failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Insurance reset failed",
		})
	}

	logger.Sugar.Infow("insurance grants reset", "users", n)
	return c.JSON(fiber.Map{
		"usersReset": n,
	})
}

// SetPremium is the billing event feed: the subscription system reports
// premium state transitions here rather than this service tracking billing.
func SetPremium(c *fiber.Ctx) error {
	var req struct {
		UserID  uuid.UUID `json:"userId"`
		Premium bool      `json:"premium"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "userId is required",
		})
	}

	result := database.DB.Model(&models.User{}).
		Where("id = ?", req.UserID).
		Update("is_premium", req.Premium)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update premium state",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
