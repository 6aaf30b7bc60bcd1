package streak

import "github.com/google/uuid"

// Member is the slice of a user the engine cares about: identity plus the
// fields the display-name fallback reads.
type Member struct {
	ID        uuid.UUID
	Username  string
	FirstName string
}

// Record is a group's streak state as persisted. A zero Record is the
// implicit state of a group that has never completed a day.
type Record struct {
	Current int
	Longest int
	LastDay *Day
}

// GroupSummary identifies a group in sweep results and notifications.
type GroupSummary struct {
	ID      uuid.UUID
	Name    string
	Current int
}

// Store is everything the engine needs from the datastore. The production
// implementation is GORM-backed (gormstore.go); tests use in-memory fakes.
type Store interface {
	// Members returns the current roster in join order. Empty for unknown
	// or memberless groups.
	Members(groupID uuid.UUID) ([]Member, error)
	// LoggedOn reports which members have at least one check-in for the
	// given group and day.
	LoggedOn(groupID uuid.UUID, day Day) (map[uuid.UUID]bool, error)
	ReadStreak(groupID uuid.UUID) (Record, error)
	WriteStreak(groupID uuid.UUID, rec Record) error
	// GroupsOf lists the groups a user belongs to, for the insurance path.
	GroupsOf(userID uuid.UUID) ([]uuid.UUID, error)
	GroupsWithStreakAtLeast(min int) ([]GroupSummary, error)
	InsuranceUsed(userID uuid.UUID) (bool, error)
	MarkInsuranceUsed(userID uuid.UUID) error
	// ResetAllInsurance clears every consumed grant, returning how many
	// users were reset. Run monthly; never touches streak records.
	ResetAllInsurance() (int64, error)
}

// Notifier is the sink for at-risk notifications emitted by the sweep.
// Fire-and-forget from the engine's perspective.
type Notifier interface {
	StreakAtRisk(group GroupSummary, missing []string) error
}
