package streak

import "github.com/google/uuid"

// MemberStatus pairs a roster member with whether they have logged a
// check-in for the day under evaluation.
type MemberStatus struct {
	Member
	HasLogged bool
}

// CompletionStatus reports, member by member, who has logged for the given
// day. Membership is evaluated at call time: someone who joined mid-streak
// is held to today's completion requirement, someone who left no longer
// counts. Unknown groups come back as an empty list; callers must treat
// zero members as "nothing to score", not as complete.
func (s *Service) CompletionStatus(groupID uuid.UUID, day Day) ([]MemberStatus, error) {
	members, err := s.store.Members(groupID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []MemberStatus{}, nil
	}

	logged, err := s.store.LoggedOn(groupID, day)
	if err != nil {
		return nil, err
	}

	statuses := make([]MemberStatus, len(members))
	for i, m := range members {
		statuses[i] = MemberStatus{Member: m, HasLogged: logged[m.ID]}
	}
	return statuses, nil
}

func allLogged(statuses []MemberStatus) bool {
	for _, st := range statuses {
		if !st.HasLogged {
			return false
		}
	}
	return true
}
