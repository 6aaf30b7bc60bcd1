package streak

import (
	"errors"

	"github.com/davidkwan/streakmates-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is the production Store backed by the shared GORM connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Members(groupID uuid.UUID) ([]Member, error) {
	var rows []models.GroupMember
	if err := s.db.Where("group_id = ?", groupID).
		Preload("User").
		Order("joined_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]Member, len(rows))
	for i, r := range rows {
		members[i] = Member{
			ID:        r.UserID,
			Username:  r.User.Username,
			FirstName: r.User.FirstName,
		}
	}
	return members, nil
}

func (s *GormStore) LoggedOn(groupID uuid.UUID, day Day) (map[uuid.UUID]bool, error) {
	var userIDs []uuid.UUID
	if err := s.db.Model(&models.CheckIn{}).
		Where("group_id = ? AND logged_day = ?", groupID, day.Time()).
		Distinct().
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, err
	}

	logged := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		logged[id] = true
	}
	return logged, nil
}

func (s *GormStore) ReadStreak(groupID uuid.UUID) (Record, error) {
	var row models.GroupStreak
	err := s.db.Where("group_id = ?", groupID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Zero state: the streak row is created with the group, but a
		// missing row still reads as a never-completed streak.
		return Record{}, nil
	}
	if err != nil {
		return Record{}, err
	}

	rec := Record{Current: row.CurrentStreak, Longest: row.LongestStreak}
	if row.LastStreakDate != nil {
		d := DayOf(*row.LastStreakDate)
		rec.LastDay = &d
	}
	return rec, nil
}

func (s *GormStore) WriteStreak(groupID uuid.UUID, rec Record) error {
	var lastDate interface{}
	if rec.LastDay != nil {
		lastDate = rec.LastDay.Time()
	}

	var row models.GroupStreak
	err := s.db.Where("group_id = ?", groupID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.GroupStreak{
			GroupID:       groupID,
			CurrentStreak: rec.Current,
			LongestStreak: rec.Longest,
		}
		if rec.LastDay != nil {
			t := rec.LastDay.Time()
			row.LastStreakDate = &t
		}
		return s.db.Create(&row).Error
	}
	if err != nil {
		return err
	}

	return s.db.Model(&row).Updates(map[string]interface{}{
		"current_streak":   rec.Current,
		"longest_streak":   rec.Longest,
		"last_streak_date": lastDate,
	}).Error
}

func (s *GormStore) GroupsOf(userID uuid.UUID) ([]uuid.UUID, error) {
	var groupIDs []uuid.UUID
	if err := s.db.Model(&models.GroupMember{}).
		Where("user_id = ?", userID).
		Pluck("group_id", &groupIDs).Error; err != nil {
		return nil, err
	}
	return groupIDs, nil
}

func (s *GormStore) GroupsWithStreakAtLeast(min int) ([]GroupSummary, error) {
	var rows []struct {
		ID            uuid.UUID
		Name          string
		CurrentStreak int
	}
	if err := s.db.Table("group_streaks").
		Select("groups.id, groups.name, group_streaks.current_streak").
		Joins("JOIN groups ON groups.id = group_streaks.group_id").
		Where("group_streaks.current_streak >= ? AND groups.deleted_at IS NULL", min).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]GroupSummary, len(rows))
	for i, r := range rows {
		summaries[i] = GroupSummary{ID: r.ID, Name: r.Name, Current: r.CurrentStreak}
	}
	return summaries, nil
}

func (s *GormStore) InsuranceUsed(userID uuid.UUID) (bool, error) {
	var user models.User
	if err := s.db.Select("streak_insurance_used").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.StreakInsuranceUsed, nil
}

func (s *GormStore) MarkInsuranceUsed(userID uuid.UUID) error {
	return s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("streak_insurance_used", true).Error
}

func (s *GormStore) ResetAllInsurance() (int64, error) {
	result := s.db.Model(&models.User{}).
		Where("streak_insurance_used = ?", true).
		Update("streak_insurance_used", false)
	return result.RowsAffected, result.Error
}
