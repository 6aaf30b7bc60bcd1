package handlers

import (
	"github.com/davidkwan/streakmates-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetGroupStreak returns the group's streak as it stands right now. The
// reported current value applies the lazy reset — a streak broken by a
// missed day reads as zero even while the stored record is stale — without
// writing anything back.
func GetGroupStreak(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	if !isGroupMember(groupID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	rec, effective, err := Streaks.ReadEffective(groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read streak",
		})
	}

	statuses, err := Streaks.CompletionStatus(groupID, Streaks.Today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read completion status",
		})
	}

	type memberFlag struct {
		ID          uuid.UUID `json:"id"`
		Username    string    `json:"username"`
		LoggedToday bool      `json:"loggedToday"`
	}
	members := make([]memberFlag, len(statuses))
	for i, st := range statuses {
		members[i] = memberFlag{ID: st.ID, Username: st.Username, LoggedToday: st.HasLogged}
	}

	resp := fiber.Map{
		"currentStreak": effective,
		"longestStreak": rec.Longest,
		"memberCount":   len(statuses),
		"members":       members,
	}
	if rec.LastDay != nil {
		resp["lastStreakDate"] = rec.LastDay.String()
	}
	return c.JSON(resp)
}

// CheckGroupRisk reports whether today is still incomplete and who is missing
func CheckGroupRisk(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	if !isGroupMember(groupID, userID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	risk, err := Streaks.CheckRisk(groupID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check risk",
		})
	}

	return c.JSON(fiber.Map{
		"atRisk":             risk.AtRisk,
		"missingMemberNames": risk.Missing,
	})
}
