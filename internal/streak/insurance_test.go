package streak

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyInsuranceExtendsOneDayStaleGroups(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.April, 10)}
	svc := newTestService(store, nil, clock)

	user := Member{ID: uuid.New(), Username: "casey"}

	// Group one: streak confirmed yesterday, exactly one day stale.
	staleGroup := uuid.New()
	store.addMember(staleGroup, user)
	yesterday := clock.day.Prev()
	store.streaks[staleGroup] = Record{Current: 6, Longest: 9, LastDay: &yesterday}

	// Group two: already broken, two days stale. Must be left alone.
	brokenGroup := uuid.New()
	store.addMember(brokenGroup, user)
	twoBack := yesterday.Prev()
	store.streaks[brokenGroup] = Record{Current: 4, Longest: 4, LastDay: &twoBack}

	extended, err := svc.ApplyInsurance(user.ID)
	require.NoError(t, err)
	assert.True(t, extended)

	rec, _ := store.ReadStreak(staleGroup)
	assert.Equal(t, 6, rec.Current, "insurance preserves continuity, it is not a length bonus")
	assert.Equal(t, 9, rec.Longest)
	assert.Equal(t, clock.day, *rec.LastDay)

	rec, _ = store.ReadStreak(brokenGroup)
	assert.Equal(t, 4, rec.Current)
	assert.Equal(t, twoBack, *rec.LastDay)

	used, _ := store.InsuranceUsed(user.ID)
	assert.True(t, used)
}

func TestApplyInsuranceConsumesGrantEvenWhenNothingExtends(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.April, 10)}
	svc := newTestService(store, nil, clock)

	user := Member{ID: uuid.New(), Username: "casey"}
	groupID := uuid.New()
	store.addMember(groupID, user)
	twoBack := clock.day.Prev().Prev()
	store.streaks[groupID] = Record{Current: 7, Longest: 7, LastDay: &twoBack}

	extended, err := svc.ApplyInsurance(user.ID)
	require.NoError(t, err)
	assert.False(t, extended)

	used, _ := store.InsuranceUsed(user.ID)
	assert.True(t, used, "grant is spent regardless of outcome")

	rec, _ := store.ReadStreak(groupID)
	assert.Equal(t, twoBack, *rec.LastDay)
}

func TestApplyInsuranceRejectsSecondUse(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.April, 10)}
	svc := newTestService(store, nil, clock)

	user := Member{ID: uuid.New(), Username: "casey"}
	groupID := uuid.New()
	store.addMember(groupID, user)

	_, err := svc.ApplyInsurance(user.ID)
	require.NoError(t, err)

	_, err = svc.ApplyInsurance(user.ID)
	assert.ErrorIs(t, err, ErrInsuranceUsed)
}

func TestInsuranceThenRealCheckInContinuesStreak(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.April, 10)}
	svc := newTestService(store, nil, clock)

	user := Member{ID: uuid.New(), Username: "casey"}
	groupID := uuid.New()
	store.addMember(groupID, user)
	yesterday := clock.day.Prev()
	store.streaks[groupID] = Record{Current: 3, Longest: 3, LastDay: &yesterday}

	_, err := svc.ApplyInsurance(user.ID)
	require.NoError(t, err)

	// A real check-in later the same day holds the streak at 3 (today is
	// already counted), and tomorrow's completion continues to 4 instead of
	// restarting at 1.
	store.log(groupID, user.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ := store.ReadStreak(groupID)
	assert.Equal(t, 3, rec.Current)
	assert.Equal(t, clock.day, *rec.LastDay)

	clock.advance(1)
	store.log(groupID, user.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ = store.ReadStreak(groupID)
	assert.Equal(t, 4, rec.Current)
	assert.Equal(t, 4, rec.Longest)
}

func TestResetAllInsurance(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.May, 1)}
	svc := newTestService(store, nil, clock)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	store.insurance[a] = true
	store.insurance[b] = true
	store.insurance[c] = false

	n, err := svc.ResetAllInsurance()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for _, id := range []uuid.UUID{a, b, c} {
		used, _ := store.InsuranceUsed(id)
		assert.False(t, used)
	}
}
