package streak

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRiskReportsMissingMembers(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	bob := Member{ID: uuid.New(), Username: "bob"}
	store.addMember(groupID, alice)
	store.addMember(groupID, bob)

	store.log(groupID, alice.ID, clock.day)

	risk, err := svc.CheckRisk(groupID)
	require.NoError(t, err)
	assert.True(t, risk.AtRisk)
	assert.Equal(t, []string{"bob"}, risk.Missing)

	// Once the missing member logs, the group is no longer at risk.
	store.log(groupID, bob.ID, clock.day)
	risk, err = svc.CheckRisk(groupID)
	require.NoError(t, err)
	assert.False(t, risk.AtRisk)
	assert.Empty(t, risk.Missing)
}

func TestCheckRiskIgnoresStreakLength(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	store.addMember(groupID, Member{ID: uuid.New(), Username: "alice"})

	// Zero streak, nobody has logged: still "at risk" — the signal means
	// today is incomplete, not that there is something to lose.
	risk, err := svc.CheckRisk(groupID)
	require.NoError(t, err)
	assert.True(t, risk.AtRisk)
}

func TestDisplayNameFallback(t *testing.T) {
	id := uuid.New()

	assert.Equal(t, "june", displayName(Member{ID: id, Username: "june", FirstName: "June"}))
	assert.Equal(t, "June", displayName(Member{ID: id, FirstName: "June"}))
	assert.Equal(t, id.String(), displayName(Member{ID: id}))
}

func TestMissingNamesInRosterOrder(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	raw := Member{ID: uuid.New()}
	store.addMember(groupID, Member{ID: uuid.New(), Username: "zoe"})
	store.addMember(groupID, Member{ID: uuid.New(), FirstName: "Ana"})
	store.addMember(groupID, raw)

	risk, err := svc.CheckRisk(groupID)
	require.NoError(t, err)
	assert.Equal(t, []string{"zoe", "Ana", raw.ID.String()}, risk.Missing)
}

func TestCompletionStatusUnknownGroup(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	statuses, err := svc.CompletionStatus(uuid.New(), clock.day)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}
