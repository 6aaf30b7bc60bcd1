package handlers

import (
	"github.com/davidkwan/streakmates-api/internal/database"
	"github.com/davidkwan/streakmates-api/internal/logger"
	"github.com/davidkwan/streakmates-api/internal/middleware"
	"github.com/davidkwan/streakmates-api/internal/models"
	"github.com/davidkwan/streakmates-api/internal/streak"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetGroups(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var memberships []models.GroupMember
	if err := database.DB.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch groups",
		})
	}

	summaries := make([]models.GroupSummary, 0, len(memberships))
	for _, m := range memberships {
		var group models.Group
		if err := database.DB.First(&group, m.GroupID).Error; err != nil {
			continue
		}

		var memberCount int64
		database.DB.Model(&models.GroupMember{}).Where("group_id = ?", m.GroupID).Count(&memberCount)

		rec, effective, err := Streaks.ReadEffective(m.GroupID)
		if err != nil {
			continue
		}

		summaries = append(summaries, models.GroupSummary{
			ID:            group.ID,
			Name:          group.Name,
			Emoji:         group.Emoji,
			MemberCount:   int(memberCount),
			CurrentStreak: effective,
			LongestStreak: rec.Longest,
		})
	}

	return c.JSON(summaries)
}

func GetGroup(c *fiber.Ctx) error {
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

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	return c.JSON(group)
}

func CreateGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	name := sanitize(req.Name)
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	group := models.Group{
		OwnerID:     userID,
		Name:        name,
		Description: sanitize(req.Description),
		Emoji:       req.Emoji,
	}

	if err := database.DB.Create(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create group",
		})
	}

	// The owner is a member like anyone else, and the streak record starts
	// in zero state alongside the group.
	member := models.GroupMember{
		GroupID: group.ID,
		UserID:  userID,
		Role:    "owner",
	}
	database.DB.Create(&member)
	database.DB.Create(&models.GroupStreak{GroupID: group.ID})

	return c.Status(fiber.StatusCreated).JSON(group)
}

func UpdateGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var group models.Group
	if err := database.DB.Where("id = ? AND owner_id = ?", groupID, userID).First(&group).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	var req models.UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name != nil {
		name := sanitize(*req.Name)
		if name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Name cannot be empty",
			})
		}
		group.Name = name
	}
	if req.Description != nil {
		group.Description = sanitize(*req.Description)
	}
	if req.Emoji != nil {
		group.Emoji = *req.Emoji
	}

	if err := database.DB.Save(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update group",
		})
	}

	WS.Broadcast(groupID, userID, WSEvent{
		Type:    EventGroupUpdated,
		GroupID: groupID.String(),
		UserID:  userID.String(),
		Data:    group,
	})

	return c.JSON(group)
}

func DeleteGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var group models.Group
	if err := database.DB.Where("id = ? AND owner_id = ?", groupID, userID).First(&group).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	database.DB.Where("group_id = ?", groupID).Delete(&models.GroupMember{})
	database.DB.Where("group_id = ?", groupID).Delete(&models.CheckIn{})
	database.DB.Where("group_id = ?", groupID).Delete(&models.GroupStreak{})
	database.DB.Where("group_id = ?", groupID).Delete(&models.GroupInvite{})

	if err := database.DB.Delete(&group).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete group",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetMembers lists all members of a group with their logged-today flags
func GetMembers(c *fiber.Ctx) error {
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

	statuses, err := Streaks.CompletionStatus(groupID, Streaks.Today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch members",
		})
	}

	var members []models.GroupMember
	database.DB.Where("group_id = ?", groupID).
		Preload("User").
		Order("joined_at ASC").
		Find(&members)

	logged := make(map[uuid.UUID]bool, len(statuses))
	for _, st := range statuses {
		logged[st.ID] = st.HasLogged
	}

	result := make([]models.MemberInfo, 0, len(members))
	for _, m := range members {
		result = append(result, models.MemberInfo{
			ID:          m.UserID,
			Username:    m.User.Username,
			FirstName:   m.User.FirstName,
			AvatarURL:   m.User.AvatarURL,
			Role:        m.Role,
			LoggedToday: logged[m.UserID],
		})
	}

	return c.JSON(result)
}

// RemoveMember removes a member from a group (owner only)
func RemoveMember(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	targetUserID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var group models.Group
	if err := database.DB.Where("id = ? AND owner_id = ?", groupID, userID).First(&group).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only the group owner can remove members",
		})
	}

	if targetUserID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Owner cannot be removed. Transfer ownership first or delete the group.",
		})
	}

	result := database.DB.Where("group_id = ? AND user_id = ?", groupID, targetUserID).Delete(&models.GroupMember{})
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Member not found",
		})
	}

	LogActivity(groupID, targetUserID, "member_left", nil, map[string]interface{}{
		"removedBy": userID,
	})

	// The roster changed, which can flip today's completion state.
	if err := Streaks.Recalculate(groupID); err != nil {
		logger.Sugar.Errorw("recalculate after member removal failed", "group", groupID, "error", err)
	}

	WS.Broadcast(groupID, userID, WSEvent{
		Type:    EventMemberLeft,
		GroupID: groupID.String(),
		UserID:  targetUserID.String(),
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// LeaveGroup allows a member to leave a group (not the owner)
func LeaveGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	var group models.Group
	if err := database.DB.First(&group, groupID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found",
		})
	}

	if group.OwnerID == userID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Owner cannot leave the group. Transfer ownership first or delete the group.",
		})
	}

	result := database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&models.GroupMember{})
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "You are not a member of this group",
		})
	}

	LogActivity(groupID, userID, "member_left", nil, nil)

	if err := Streaks.Recalculate(groupID); err != nil {
		logger.Sugar.Errorw("recalculate after leave failed", "group", groupID, "error", err)
	}

	WS.Broadcast(groupID, userID, WSEvent{
		Type:    EventMemberLeft,
		GroupID: groupID.String(),
		UserID:  userID.String(),
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// isGroupMember checks if a user belongs to a group
func isGroupMember(groupID, userID uuid.UUID) bool {
	var member models.GroupMember
	return database.DB.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error == nil
}

// Streaks is the shared streak engine, wired up in main.
var Streaks *streak.Service

func InitStreaks(svc *streak.Service) {
	Streaks = svc
}
