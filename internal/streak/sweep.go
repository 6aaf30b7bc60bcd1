package streak

// MinStreakWorthSaving is the floor below which the sweep does not bother
// warning a group. Risk checks on demand ignore it.
const MinStreakWorthSaving = 3

// SweepResult summarizes one proactive sweep run.
type SweepResult struct {
	GroupsChecked     int `json:"groupsChecked"`
	AtRiskCount       int `json:"atRiskCount"`
	NotificationsSent int `json:"notificationsSent"`
}

// Sweep walks every group holding a streak at or above the floor, runs the
// at-risk check and pushes one notification per at-risk group. A failure on
// one group is logged and skipped so the rest of the sweep still runs; the
// sink may receive duplicate records across runs, deduplication is its
// problem.
//
// Enumeration is by the stored streak, which can be stale for groups that
// already broke without a recalculation correcting them. Those read as an
// effective zero and are skipped: there is nothing left to save.
func (s *Service) Sweep() (SweepResult, error) {
	groups, err := s.store.GroupsWithStreakAtLeast(MinStreakWorthSaving)
	if err != nil {
		return SweepResult{}, err
	}

	today := s.clock.Today()

	var res SweepResult
	for _, g := range groups {
		res.GroupsChecked++

		rec, err := s.store.ReadStreak(g.ID)
		if err != nil {
			s.log.Errorw("sweep: streak read failed", "group", g.ID, "error", err)
			continue
		}
		if Effective(rec, today) < MinStreakWorthSaving {
			continue
		}

		risk, err := s.CheckRisk(g.ID)
		if err != nil {
			s.log.Errorw("sweep: risk check failed", "group", g.ID, "error", err)
			continue
		}
		if !risk.AtRisk {
			continue
		}
		res.AtRiskCount++

		if err := s.notifier.StreakAtRisk(g, risk.Missing); err != nil {
			s.log.Errorw("sweep: notification failed", "group", g.ID, "error", err)
			continue
		}
		res.NotificationsSent++
	}

	s.log.Infow("sweep complete",
		"groupsChecked", res.GroupsChecked,
		"atRisk", res.AtRiskCount,
		"notified", res.NotificationsSent,
	)
	return res, nil
}
