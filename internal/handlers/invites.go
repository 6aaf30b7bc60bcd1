package handlers

import (
	"time"

	"github.com/davidkwan/streakmates-api/internal/database"
	"github.com/davidkwan/streakmates-api/internal/logger"
	"github.com/davidkwan/streakmates-api/internal/middleware"
	"github.com/davidkwan/streakmates-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CreateInvite generates an invite code for a group (owner only)
func CreateInvite(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	groupID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid group ID",
		})
	}

	// Verify user is the group owner
	var group models.Group
	if err := database.DB.Where("id = ? AND owner_id = ?", groupID, userID).First(&group).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group not found or you are not the owner",
		})
	}

	var req models.CreateInviteRequest
	c.BodyParser(&req) // optional body

	invite := models.GroupInvite{
		GroupID:   groupID,
		InviterID: userID,
		MaxUses:   req.MaxUses,
	}

	if req.ExpiresIn > 0 {
		exp := time.Now().Add(time.Duration(req.ExpiresIn) * time.Hour)
		invite.ExpiresAt = &exp
	}

	if err := database.DB.Create(&invite).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create invite",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(invite)
}

// JoinGroup joins a group via invite code
func JoinGroup(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	code := c.Params("code")

	// Find the invite
	var invite models.GroupInvite
	if err := database.DB.Where("invite_code = ?", code).First(&invite).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Invalid invite code",
		})
	}

	if !invite.IsValid() {
		return c.Status(fiber.StatusGone).JSON(fiber.Map{
			"error": "This invite has expired or reached its usage limit",
		})
	}

	// Check the group exists
	var group models.Group
	if err := database.DB.First(&group, invite.GroupID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Group no longer exists",
		})
	}

	// Check if already a member
	var existing models.GroupMember
	if err := database.DB.Where("group_id = ? AND user_id = ?", invite.GroupID, userID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You are already a member of this group",
		})
	}

	// Check member limit
	var memberCount int64
	database.DB.Model(&models.GroupMember{}).Where("group_id = ?", invite.GroupID).Count(&memberCount)
	if int(memberCount) >= group.MaxMembers {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "This group has reached its maximum number of members",
		})
	}

	// Create membership
	member := models.GroupMember{
		GroupID: invite.GroupID,
		UserID:  userID,
		Role:    "member",
	}
	if err := database.DB.Create(&member).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to join group",
		})
	}

	// Increment invite usage
	database.DB.Model(&invite).Update("used_count", invite.UsedCount+1)

	LogActivity(invite.GroupID, userID, "member_joined", nil, nil)

	// A bigger roster means today's completion needs everyone again,
	// including the newcomer.
	if err := Streaks.Recalculate(invite.GroupID); err != nil {
		logger.Sugar.Errorw("recalculate after join failed", "group", invite.GroupID, "error", err)
	}

	// Notify other group members
	var joiner models.User
	database.DB.First(&joiner, userID)
	name := joiner.DisplayName()
	notifyGroupMembers(invite.GroupID, userID, "member_joined",
		"New member joined",
		name+" joined "+group.Name,
		map[string]interface{}{"groupId": invite.GroupID.String()},
	)

	WS.Broadcast(invite.GroupID, userID, WSEvent{
		Type:    EventMemberJoined,
		GroupID: invite.GroupID.String(),
		UserID:  userID.String(),
		Data: map[string]interface{}{
			"userName": name,
		},
	})

	return c.JSON(fiber.Map{
		"message": "Successfully joined group",
		"groupId": invite.GroupID,
	})
}
