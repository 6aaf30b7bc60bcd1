package streak

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// fakeStore is an in-memory Store for engine tests. It copies records on
// the way in and out so tests catch any aliasing of the stored state.
type fakeStore struct {
	members   map[uuid.UUID][]Member
	logged    map[uuid.UUID]map[Day]map[uuid.UUID]bool
	streaks   map[uuid.UUID]Record
	insurance map[uuid.UUID]bool
	groupsOf  map[uuid.UUID][]uuid.UUID
	summaries []GroupSummary

	writeCount int
	failGroups map[uuid.UUID]error // Members() fails for these groups
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:    make(map[uuid.UUID][]Member),
		logged:     make(map[uuid.UUID]map[Day]map[uuid.UUID]bool),
		streaks:    make(map[uuid.UUID]Record),
		insurance:  make(map[uuid.UUID]bool),
		groupsOf:   make(map[uuid.UUID][]uuid.UUID),
		failGroups: make(map[uuid.UUID]error),
	}
}

func (f *fakeStore) addMember(groupID uuid.UUID, m Member) {
	f.members[groupID] = append(f.members[groupID], m)
	f.groupsOf[m.ID] = append(f.groupsOf[m.ID], groupID)
}

func (f *fakeStore) log(groupID, userID uuid.UUID, day Day) {
	if f.logged[groupID] == nil {
		f.logged[groupID] = make(map[Day]map[uuid.UUID]bool)
	}
	if f.logged[groupID][day] == nil {
		f.logged[groupID][day] = make(map[uuid.UUID]bool)
	}
	f.logged[groupID][day][userID] = true
}

func copyRecord(rec Record) Record {
	out := Record{Current: rec.Current, Longest: rec.Longest}
	if rec.LastDay != nil {
		d := *rec.LastDay
		out.LastDay = &d
	}
	return out
}

func (f *fakeStore) Members(groupID uuid.UUID) ([]Member, error) {
	if err := f.failGroups[groupID]; err != nil {
		return nil, err
	}
	return f.members[groupID], nil
}

func (f *fakeStore) LoggedOn(groupID uuid.UUID, day Day) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for id := range f.logged[groupID][day] {
		out[id] = true
	}
	return out, nil
}

func (f *fakeStore) ReadStreak(groupID uuid.UUID) (Record, error) {
	return copyRecord(f.streaks[groupID]), nil
}

func (f *fakeStore) WriteStreak(groupID uuid.UUID, rec Record) error {
	f.writeCount++
	f.streaks[groupID] = copyRecord(rec)
	return nil
}

func (f *fakeStore) GroupsOf(userID uuid.UUID) ([]uuid.UUID, error) {
	return f.groupsOf[userID], nil
}

func (f *fakeStore) GroupsWithStreakAtLeast(min int) ([]GroupSummary, error) {
	var out []GroupSummary
	for _, g := range f.summaries {
		if g.Current >= min {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeStore) InsuranceUsed(userID uuid.UUID) (bool, error) {
	return f.insurance[userID], nil
}

func (f *fakeStore) MarkInsuranceUsed(userID uuid.UUID) error {
	f.insurance[userID] = true
	return nil
}

func (f *fakeStore) ResetAllInsurance() (int64, error) {
	var n int64
	for id, used := range f.insurance {
		if used {
			f.insurance[id] = false
			n++
		}
	}
	return n, nil
}

// fakeNotifier records at-risk notifications and can be told to fail for
// specific groups.
type fakeNotifier struct {
	sent    []GroupSummary
	missing [][]string
	failFor map[uuid.UUID]bool
}

func (n *fakeNotifier) StreakAtRisk(group GroupSummary, missing []string) error {
	if n.failFor[group.ID] {
		return errors.New("sink unavailable")
	}
	n.sent = append(n.sent, group)
	n.missing = append(n.missing, missing)
	return nil
}

// testClock is a mutable clock so tests can walk the calendar day by day.
type testClock struct {
	day Day
}

func (c *testClock) Today() Day { return c.day }

func (c *testClock) advance(days int) {
	for i := 0; i < days; i++ {
		c.day = c.day.Next()
	}
}

func day(y int, m time.Month, d int) Day {
	return Day{Year: y, Month: m, Date: d}
}

func newTestService(store *fakeStore, notifier *fakeNotifier, clock *testClock) *Service {
	if notifier == nil {
		notifier = &fakeNotifier{}
	}
	return New(store, notifier, WithClock(clock))
}
