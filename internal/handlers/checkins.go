package handlers

import (
	"time"

	"github.com/davidkwan/streakmates-api/internal/database"
	"github.com/davidkwan/streakmates-api/internal/logger"
	"github.com/davidkwan/streakmates-api/internal/middleware"
	"github.com/davidkwan/streakmates-api/internal/models"
	"github.com/davidkwan/streakmates-api/internal/streak"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateCheckIn logs one check-in into each requested group as a single
// logical action. Per group: membership is verified, the entry is written
// durably, and only then is the streak recalculated. Group recalculations
// are independent of each other, so one group's streak outcome never
// depends on the order the groups were listed in.
func CreateCheckIn(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateCheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if len(req.GroupIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one group is required",
		})
	}

	// The day a check-in counts for is the UTC calendar date of the
	// client's timestamp, not of server receipt.
	loggedAt := time.Now()
	if req.LoggedAt != nil {
		loggedAt = *req.LoggedAt
	}
	loggedDay := streak.DayOf(loggedAt)

	var note *string
	if req.Note != nil {
		clean := sanitize(*req.Note)
		if clean != "" {
			note = &clean
		}
	}

	// All-or-nothing membership check before anything is written.
	for _, groupID := range req.GroupIDs {
		if !isGroupMember(groupID, userID) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "You are not a member of one of the requested groups",
			})
		}
	}

	type groupResult struct {
		GroupID       uuid.UUID      `json:"groupId"`
		Entry         models.CheckIn `json:"entry"`
		CurrentStreak int            `json:"currentStreak"`
		LongestStreak int            `json:"longestStreak"`
	}

	results := make([]groupResult, 0, len(req.GroupIDs))
	for _, groupID := range req.GroupIDs {
		entry := models.CheckIn{
			GroupID:   groupID,
			UserID:    userID,
			LoggedDay: loggedDay.Time(),
			LoggedAt:  loggedAt,
			Note:      note,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record check-in",
			})
		}

		if err := Streaks.Recalculate(groupID); err != nil {
			logger.Sugar.Errorw("recalculate after check-in failed", "group", groupID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update streak",
			})
		}

		rec, effective, err := Streaks.ReadEffective(groupID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to read streak",
			})
		}

		LogActivity(groupID, userID, "checkin_logged", &entry.ID, map[string]interface{}{
			"loggedDay": loggedDay.String(),
		})

		WS.Broadcast(groupID, userID, WSEvent{
			Type:    EventCheckInLogged,
			GroupID: groupID.String(),
			UserID:  userID.String(),
			Data: map[string]interface{}{
				"entryId":       entry.ID.String(),
				"loggedDay":     loggedDay.String(),
				"currentStreak": effective,
			},
		})

		results = append(results, groupResult{
			GroupID:       groupID,
			Entry:         entry,
			CurrentStreak: effective,
			LongestStreak: rec.Longest,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"checkIns": results,
	})
}

// GetGroupCheckIns lists a group's check-ins for one day (default today)
func GetGroupCheckIns(c *fiber.Ctx) error {
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

	day := Streaks.Today()
	if q := c.Query("day"); q != "" {
		t, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid day, expected YYYY-MM-DD",
			})
		}
		day = streak.DayOf(t)
	}

	var entries []models.CheckIn
	database.DB.Where("group_id = ? AND logged_day = ?", groupID, day.Time()).
		Preload("User").
		Order("logged_at ASC").
		Find(&entries)

	return c.JSON(fiber.Map{
		"day":      day.String(),
		"checkIns": entries,
	})
}
