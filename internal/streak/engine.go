package streak

import "github.com/google/uuid"

// Recalculate re-evaluates a group's streak against today's completion
// state. It is invoked once per check-in write per affected group, after
// the check-in is durably recorded, and is idempotent per day: any number
// of calls against the same completion state leave the same record.
//
// A missed day is corrected lazily. The record is not zeroed on the day the
// group misses; the reset happens on the next recalculation (or is applied
// virtually by Effective on the read path) once lastStreakDate has fallen
// more than one day behind.
func (s *Service) Recalculate(groupID uuid.UUID) error {
	lk := s.lockGroup(groupID)
	lk.Lock()
	defer lk.Unlock()

	statuses, err := s.CompletionStatus(groupID, s.clock.Today())
	if err != nil {
		return err
	}
	// Deleted or memberless group: nothing to score.
	if len(statuses) == 0 {
		return nil
	}

	rec, err := s.store.ReadStreak(groupID)
	if err != nil {
		return err
	}

	today := s.clock.Today()
	yesterday := today.Prev()

	if !allLogged(statuses) {
		// Today is incomplete. If the last confirmed completion is older
		// than yesterday, a day was skipped and the counter falls back to
		// zero; lastStreakDate stays put as the record of the last real
		// completion.
		if rec.LastDay != nil && *rec.LastDay != today && *rec.LastDay != yesterday && rec.Current != 0 {
			rec.Current = 0
			return s.store.WriteStreak(groupID, rec)
		}
		return nil
	}

	switch {
	case rec.LastDay != nil && *rec.LastDay == today:
		// Already counted today; a second member's check-in lands here.
		return nil
	case rec.LastDay != nil && *rec.LastDay == yesterday:
		rec.Current++
	default:
		// First ever completion, or completion after a gap.
		rec.Current = 1
	}

	if rec.Current > rec.Longest {
		rec.Longest = rec.Current
	}
	d := today
	rec.LastDay = &d
	return s.store.WriteStreak(groupID, rec)
}

// Effective returns the streak length a reader should see today. When the
// stored record is more than one day stale the streak is already broken
// even though no write has corrected it yet; reads report zero without
// mutating the record.
func Effective(rec Record, today Day) int {
	if rec.LastDay == nil {
		return 0
	}
	if *rec.LastDay == today || *rec.LastDay == today.Prev() {
		return rec.Current
	}
	return 0
}

// ReadEffective loads a group's record and applies the lazy-reset view in
// one step. The stored record is returned untouched alongside the reported
// current value.
func (s *Service) ReadEffective(groupID uuid.UUID) (Record, int, error) {
	rec, err := s.store.ReadStreak(groupID)
	if err != nil {
		return Record{}, 0, err
	}
	return rec, Effective(rec, s.clock.Today()), nil
}
