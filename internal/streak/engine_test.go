package streak

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoloGroupDailyProgression(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	store.addMember(groupID, alice)

	for want := 1; want <= 3; want++ {
		store.log(groupID, alice.ID, clock.day)
		require.NoError(t, svc.Recalculate(groupID))

		rec, _ := store.ReadStreak(groupID)
		assert.Equal(t, want, rec.Current)
		assert.Equal(t, want, rec.Longest)
		require.NotNil(t, rec.LastDay)
		assert.Equal(t, clock.day, *rec.LastDay)

		clock.advance(1)
	}
}

func TestMultiMemberGating(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	bob := Member{ID: uuid.New(), Username: "bob"}
	store.addMember(groupID, alice)
	store.addMember(groupID, bob)

	// One member logging alone never advances the streak.
	store.log(groupID, alice.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ := store.ReadStreak(groupID)
	assert.Equal(t, 0, rec.Current)
	assert.Nil(t, rec.LastDay)

	// The last outstanding member's check-in completes the day.
	store.log(groupID, bob.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ = store.ReadStreak(groupID)
	assert.Equal(t, 1, rec.Current)
	assert.Equal(t, 1, rec.Longest)
}

func TestRecalculateIdempotentPerDay(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 10)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	store.addMember(groupID, alice)
	store.log(groupID, alice.ID, clock.day)

	require.NoError(t, svc.Recalculate(groupID))
	first, _ := store.ReadStreak(groupID)
	writesAfterFirst := store.writeCount

	// Re-invocations on the same completion state change nothing and skip
	// the write entirely.
	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Recalculate(groupID))
	}
	again, _ := store.ReadStreak(groupID)
	assert.Equal(t, first, again)
	assert.Equal(t, writesAfterFirst, store.writeCount)
}

func TestContinuationAndResetAfterGap(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	store.addMember(groupID, alice)

	// Build a 5-day streak.
	for i := 0; i < 5; i++ {
		store.log(groupID, alice.ID, clock.day)
		require.NoError(t, svc.Recalculate(groupID))
		clock.advance(1)
	}
	rec, _ := store.ReadStreak(groupID)
	require.Equal(t, 5, rec.Current)

	// Skip a day entirely, then complete the day after. The streak restarts
	// at exactly 1 regardless of its prior value.
	clock.advance(1)
	store.log(groupID, alice.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))

	rec, _ = store.ReadStreak(groupID)
	assert.Equal(t, 1, rec.Current)
	assert.Equal(t, 5, rec.Longest)
	assert.Equal(t, clock.day, *rec.LastDay)
}

func TestLongestStreakMonotonic(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	store.addMember(groupID, alice)

	prevLongest := 0
	// Streak of 3, gap, streak of 2, gap, streak of 4. Longest never dips.
	for _, run := range []int{3, 2, 4} {
		for i := 0; i < run; i++ {
			store.log(groupID, alice.ID, clock.day)
			require.NoError(t, svc.Recalculate(groupID))

			rec, _ := store.ReadStreak(groupID)
			assert.GreaterOrEqual(t, rec.Longest, prevLongest)
			assert.GreaterOrEqual(t, rec.Longest, rec.Current)
			prevLongest = rec.Longest

			clock.advance(1)
		}
		clock.advance(1) // miss a day between runs
	}

	rec, _ := store.ReadStreak(groupID)
	assert.Equal(t, 4, rec.Current)
	assert.Equal(t, 4, rec.Longest)
}

func TestLazyResetOnRead(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	store.addMember(groupID, alice)

	store.log(groupID, alice.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))

	// Two days pass with no check-ins. The stored record still says 1, but
	// a read reports 0 — and reading must not write.
	clock.advance(2)
	writesBefore := store.writeCount

	rec, effective, err := svc.ReadEffective(groupID)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Current, "stored value stays stale until the next write path runs")
	assert.Equal(t, 0, effective, "reported value applies the reset")
	assert.Equal(t, writesBefore, store.writeCount)
}

func TestLazyResetPersistedOnNextRecalculation(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	bob := Member{ID: uuid.New(), Username: "bob"}
	store.addMember(groupID, alice)
	store.addMember(groupID, bob)

	store.log(groupID, alice.ID, clock.day)
	store.log(groupID, bob.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	confirmed := clock.day

	// Two days later only one member logs: today is incomplete, and the
	// skipped day zeroes the counter while lastStreakDate stays on the last
	// real completion.
	clock.advance(2)
	store.log(groupID, alice.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))

	rec, _ := store.ReadStreak(groupID)
	assert.Equal(t, 0, rec.Current)
	require.NotNil(t, rec.LastDay)
	assert.Equal(t, confirmed, *rec.LastDay)
}

func TestTwoMemberScenario(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.June, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	a := Member{ID: uuid.New(), Username: "a"}
	b := Member{ID: uuid.New(), Username: "b"}
	store.addMember(groupID, a)
	store.addMember(groupID, b)

	// Day 0: A logs (streak stays 0), B logs (streak becomes 1).
	store.log(groupID, a.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ := store.ReadStreak(groupID)
	assert.Equal(t, 0, rec.Current)

	store.log(groupID, b.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ = store.ReadStreak(groupID)
	assert.Equal(t, 1, rec.Current)
	assert.Equal(t, 1, rec.Longest)

	// Day 1: both log, streak becomes 2.
	clock.advance(1)
	store.log(groupID, a.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	store.log(groupID, b.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ = store.ReadStreak(groupID)
	assert.Equal(t, 2, rec.Current)

	// Day 2: neither logs. Day 3: reading first shows 0, then both log and
	// the streak restarts at 1 with longest still 2.
	clock.advance(2)
	stored, effective, err := svc.ReadEffective(groupID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Current)
	assert.Equal(t, 0, effective)

	store.log(groupID, a.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	store.log(groupID, b.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ = store.ReadStreak(groupID)
	assert.Equal(t, 1, rec.Current)
	assert.Equal(t, 2, rec.Longest)
}

func TestSoloScenarioAcrossGap(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.June, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	solo := Member{ID: uuid.New(), Username: "solo"}
	store.addMember(groupID, solo)

	// Days 0-2: streak reaches 3.
	for i := 0; i < 3; i++ {
		store.log(groupID, solo.ID, clock.day)
		require.NoError(t, svc.Recalculate(groupID))
		clock.advance(1)
	}
	rec, _ := store.ReadStreak(groupID)
	require.Equal(t, 3, rec.Current)
	require.Equal(t, 3, rec.Longest)

	// Day 3 skipped. Days 4-7: restart at 1 and climb to 4; longest moves
	// from 3 to 4 on the last day.
	clock.advance(1)
	for want := 1; want <= 4; want++ {
		store.log(groupID, solo.ID, clock.day)
		require.NoError(t, svc.Recalculate(groupID))

		rec, _ = store.ReadStreak(groupID)
		assert.Equal(t, want, rec.Current)
		clock.advance(1)
	}
	assert.Equal(t, 4, rec.Current)
	assert.Equal(t, 4, rec.Longest)
}

func TestMemberJoiningMidStreakGatesCompletion(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	groupID := uuid.New()
	alice := Member{ID: uuid.New(), Username: "alice"}
	store.addMember(groupID, alice)

	store.log(groupID, alice.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))

	// Bob joins. From today on the day is only complete once he logs too.
	clock.advance(1)
	bob := Member{ID: uuid.New(), Username: "bob"}
	store.addMember(groupID, bob)

	store.log(groupID, alice.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ := store.ReadStreak(groupID)
	assert.Equal(t, 1, rec.Current, "new member has not logged, streak holds")

	store.log(groupID, bob.ID, clock.day)
	require.NoError(t, svc.Recalculate(groupID))
	rec, _ = store.ReadStreak(groupID)
	assert.Equal(t, 2, rec.Current)
}

func TestRecalculateUnknownGroupIsNoop(t *testing.T) {
	store := newFakeStore()
	clock := &testClock{day: day(2024, time.March, 1)}
	svc := newTestService(store, nil, clock)

	require.NoError(t, svc.Recalculate(uuid.New()))
	assert.Equal(t, 0, store.writeCount)
}

func TestEffective(t *testing.T) {
	today := day(2024, time.March, 10)
	yesterday := today.Prev()
	older := day(2024, time.March, 5)

	assert.Equal(t, 0, Effective(Record{}, today))
	assert.Equal(t, 4, Effective(Record{Current: 4, Longest: 4, LastDay: &today}, today))
	assert.Equal(t, 4, Effective(Record{Current: 4, Longest: 4, LastDay: &yesterday}, today))
	assert.Equal(t, 0, Effective(Record{Current: 4, Longest: 4, LastDay: &older}, today))
}
