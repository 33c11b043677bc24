package reward

import "github.com/voluntree-lab/backend/internal/entity"

// Snapshot is everything the engine reads. It is assembled by the caller
// before computation, so the engine itself touches no storage, clock, or
// randomness. Two identical snapshots always produce identical results.
type Snapshot struct {
	Member   entity.Member
	Activity entity.Activity

	// Validated includes the validation being rewarded.
	Validated []entity.ValidatedActivity

	OwnedBadges       []entity.MemberBadge
	AcceptedReferrals int
}

func (s *Snapshot) owns(categoryID, badgeID string) bool {
	for _, owned := range s.OwnedBadges {
		if owned.CategoryID == categoryID && owned.BadgeID == badgeID {
			return true
		}
	}

	return false
}
