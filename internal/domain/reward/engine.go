package reward

import (
	"sort"

	"github.com/voluntree-lab/backend/internal/entity"
)

type Result struct {
	ActivityXP int
	BadgeXP    int
	TotalXP    int

	// Unlocked preserves catalog order (category id, then badge id).
	Unlocked []entity.Badge

	// BadgeXPMap keys badge id to its bonus for the notification payload.
	BadgeXPMap map[string]int
}

// Compute evaluates the catalog against the snapshot. A badge unlocks when
// its rule is satisfied and the member does not own it yet; unlocking is
// additive only, owned badges are never re-evaluated or revoked. Badges with
// undecodable rules are skipped rather than failing the redemption.
func Compute(s *Snapshot, catalog []entity.Badge) (*Result, error) {
	sorted := make([]entity.Badge, len(catalog))
	copy(sorted, catalog)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CategoryID != sorted[j].CategoryID {
			return sorted[i].CategoryID < sorted[j].CategoryID
		}
		return sorted[i].ID < sorted[j].ID
	})

	result := &Result{
		ActivityXP: s.Activity.XpReward,
		BadgeXPMap: map[string]int{},
	}

	for _, badge := range sorted {
		if s.owns(badge.CategoryID, badge.ID) {
			continue
		}

		r, err := newRule(badge.RuleType, badge.RuleData)
		if err != nil {
			continue
		}

		if !r.unlocked(s) {
			continue
		}

		result.Unlocked = append(result.Unlocked, badge)
		result.BadgeXP += badge.XP
		result.BadgeXPMap[badge.ID] = badge.XP
	}

	result.TotalXP = result.ActivityXP + result.BadgeXP
	return result, nil
}
