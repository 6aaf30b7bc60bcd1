package handlers

import (
	"errors"

	"github.com/davidkwan/streakmates-api/internal/database"
	"github.com/davidkwan/streakmates-api/internal/middleware"
	"github.com/davidkwan/streakmates-api/internal/models"
	"github.com/davidkwan/streakmates-api/internal/streak"
	"github.com/gofiber/fiber/v2"
)

// ApplyInsurance spends the caller's monthly streak-insurance grant across
// every group they belong to. Premium only; one use per cycle.
func ApplyInsurance(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if !user.IsPremium {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Streak insurance requires a premium subscription",
		})
	}

	extended, err := Streaks.ApplyInsurance(userID)
	if err != nil {
		if errors.Is(err, streak.ErrInsuranceUsed) {
			// Distinct from an authorization failure so the client can
			// render the real reason.
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Streak insurance already used this month",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to apply streak insurance",
		})
	}

	return c.JSON(fiber.Map{
		"extended": extended,
	})
}
