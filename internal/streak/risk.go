package streak

import "github.com/google/uuid"

// Risk is the result of an at-risk check. AtRisk means today is not yet
// complete, regardless of whether there is an existing streak to protect;
// the sweep applies its own streak-length floor before acting on it.
type Risk struct {
	AtRisk  bool
	Missing []string // display names of members yet to log, in roster order
}

// CheckRisk reports whether the group's day is incomplete and who is still
// missing. Pure read; used by the on-demand endpoint and the sweep.
func (s *Service) CheckRisk(groupID uuid.UUID) (Risk, error) {
	statuses, err := s.CompletionStatus(groupID, s.clock.Today())
	if err != nil {
		return Risk{}, err
	}

	missing := []string{}
	for _, st := range statuses {
		if !st.HasLogged {
			missing = append(missing, displayName(st.Member))
		}
	}
	return Risk{AtRisk: len(missing) > 0, Missing: missing}, nil
}

// displayName resolves what to call a member in notifications: username,
// falling back to first name, falling back to the raw identifier.
func displayName(m Member) string {
	if m.Username != "" {
		return m.Username
	}
	if m.FirstName != "" {
		return m.FirstName
	}
	return m.ID.String()
}
