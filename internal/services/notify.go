package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davidkwan/streakmates-api/internal/models"
	"github.com/davidkwan/streakmates-api/internal/streak"
	"gorm.io/gorm"
)

// RiskNotifier is the streak engine's notification sink. One at-risk signal
// per group fans out to a Notification row (and an FCM push) for every
// member, mirroring how the rest of the product notifies groups.
type RiskNotifier struct {
	db *gorm.DB
}

func NewRiskNotifier(db *gorm.DB) *RiskNotifier {
	return &RiskNotifier{db: db}
}

func (n *RiskNotifier) StreakAtRisk(group streak.GroupSummary, missing []string) error {
	var members []models.GroupMember
	if err := n.db.Where("group_id = ?", group.ID).Find(&members).Error; err != nil {
		return err
	}

	title := "Streak at risk!"
	body := fmt.Sprintf("%s's %d-day streak breaks tonight. Still waiting on %s.",
		group.Name, group.Current, strings.Join(missing, ", "))

	metadata := map[string]interface{}{
		"groupId":        group.ID.String(),
		"streak":         group.Current,
		"missingMembers": missing,
	}

	var metaStr *string
	pushData := map[string]string{"type": "streak_at_risk", "groupId": group.ID.String()}
	if data, err := json.Marshal(metadata); err == nil {
		s := string(data)
		metaStr = &s
	}

	for _, m := range members {
		notif := models.Notification{
			UserID:   m.UserID,
			Type:     "streak_at_risk",
			Title:    title,
			Body:     body,
			Metadata: metaStr,
		}
		if err := n.db.Create(&notif).Error; err != nil {
			return err
		}

		if Push != nil {
			go Push.SendToUser(m.UserID, title, body, pushData)
		}
	}
	return nil
}

var _ streak.Notifier = (*RiskNotifier)(nil)
