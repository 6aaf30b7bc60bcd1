package streak

import "github.com/google/uuid"

// ApplyInsurance spends a user's monthly streak-insurance grant. For every
// group the user belongs to whose streak is exactly one day stale (last
// completion was yesterday, counter above zero), the record is carried
// through today as if yesterday's completion had continued: lastStreakDate
// moves to today, the counter does not grow. A later real check-in today
// then lands on the continuation branch of Recalculate instead of starting
// over at one.
//
// Groups in any other state are left alone, and the grant is consumed after
// the pass whether or not anything was extended. Returns whether at least
// one group was extended, or ErrInsuranceUsed if the grant is gone.
func (s *Service) ApplyInsurance(userID uuid.UUID) (bool, error) {
	used, err := s.store.InsuranceUsed(userID)
	if err != nil {
		return false, err
	}
	if used {
		return false, ErrInsuranceUsed
	}

	groups, err := s.store.GroupsOf(userID)
	if err != nil {
		return false, err
	}

	today := s.clock.Today()
	extended := false
	for _, groupID := range groups {
		ok, err := s.extendThroughToday(groupID, today)
		if err != nil {
			return extended, err
		}
		if ok {
			extended = true
		}
	}

	if err := s.store.MarkInsuranceUsed(userID); err != nil {
		return extended, err
	}
	return extended, nil
}

func (s *Service) extendThroughToday(groupID uuid.UUID, today Day) (bool, error) {
	lk := s.lockGroup(groupID)
	lk.Lock()
	defer lk.Unlock()

	rec, err := s.store.ReadStreak(groupID)
	if err != nil {
		return false, err
	}

	// Only the exactly-one-day-stale state qualifies: at risk of breaking
	// today, not yet broken. Two or more days stale is already lost.
	if rec.LastDay == nil || *rec.LastDay != today.Prev() || rec.Current == 0 {
		return false, nil
	}

	d := today
	rec.LastDay = &d
	if err := s.store.WriteStreak(groupID, rec); err != nil {
		return false, err
	}
	return true, nil
}

// ResetAllInsurance restores every consumed grant, returning the number of
// users reset. Scheduled monthly by an external trigger; already-broken
// streaks are unaffected.
func (s *Service) ResetAllInsurance() (int64, error) {
	return s.store.ResetAllInsurance()
}
