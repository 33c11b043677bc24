package reward

import (
	"testing"

	"github.com/voluntree-lab/backend/internal/entity"

	"github.com/stretchr/testify/require"
)

func validated(n int, activityType entity.ActivityType, sdgs ...int) []entity.ValidatedActivity {
	out := make([]entity.ValidatedActivity, 0, n)
	for i := 0; i < n; i++ {
		sdg := 0
		if i < len(sdgs) {
			sdg = sdgs[i]
		}
		out = append(out, entity.ValidatedActivity{Type: activityType, SDG: sdg})
	}
	return out
}

func TestCompute_countRule(t *testing.T) {
	catalog := []entity.Badge{
		{
			ID: "five-activities", CategoryID: "c1", XP: 50,
			RuleType: entity.RuleCount, RuleData: entity.Map{"count": 5},
		},
		{
			ID: "three-events", CategoryID: "c1", XP: 30,
			RuleType: entity.RuleCount, RuleData: entity.Map{"count": 3, "type": "event"},
		},
	}

	s := &Snapshot{
		Activity:  entity.Activity{XpReward: 20},
		Validated: validated(5, entity.ActivityLocal),
	}
	result, err := Compute(s, catalog)
	require.NoError(t, err)
	require.Equal(t, 20, result.ActivityXP)
	require.Equal(t, 50, result.BadgeXP)
	require.Equal(t, 70, result.TotalXP)
	require.Len(t, result.Unlocked, 1)
	require.Equal(t, "five-activities", result.Unlocked[0].ID)
	require.Equal(t, map[string]int{"five-activities": 50}, result.BadgeXPMap)

	// The typed counter ignores other activity types.
	s.Validated = validated(4, entity.ActivityEvent)
	result, err = Compute(s, catalog)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 1)
	require.Equal(t, "three-events", result.Unlocked[0].ID)
}

func TestCompute_categoryRule(t *testing.T) {
	catalog := []entity.Badge{
		{
			ID: "ocean-hero", CategoryID: "c1", XP: 40,
			RuleType: entity.RuleCategory, RuleData: entity.Map{"sdg": 14, "count": 3},
		},
		{
			ID: "generalist", CategoryID: "c1", XP: 25,
			RuleType: entity.RuleCategory, RuleData: entity.Map{"count": 3},
		},
	}

	// Three validations all serving goal 14 unlock the specific badge but
	// cover only one distinct goal.
	s := &Snapshot{Validated: validated(3, entity.ActivityLocal, 14, 14, 14)}
	result, err := Compute(s, catalog)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 1)
	require.Equal(t, "ocean-hero", result.Unlocked[0].ID)

	// Three distinct goals unlock the coverage badge instead.
	s = &Snapshot{Validated: validated(3, entity.ActivityLocal, 2, 14, 15)}
	result, err = Compute(s, catalog)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 1)
	require.Equal(t, "generalist", result.Unlocked[0].ID)
}

func TestCompute_referralRule(t *testing.T) {
	catalog := []entity.Badge{{
		ID: "connector", CategoryID: "c1", XP: 15,
		RuleType: entity.RuleReferral, RuleData: entity.Map{"count": 2},
	}}

	s := &Snapshot{Validated: validated(1, entity.ActivityLocal), AcceptedReferrals: 1}
	result, err := Compute(s, catalog)
	require.NoError(t, err)
	require.Empty(t, result.Unlocked)

	s.AcceptedReferrals = 2
	result, err = Compute(s, catalog)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 1)
}

func TestCompute_milestoneRule(t *testing.T) {
	catalog := []entity.Badge{
		{
			ID: "first-steps", CategoryID: "c1", XP: 5,
			RuleType: entity.RuleMilestone, RuleData: entity.Map{"first_validation": true},
		},
		{
			ID: "centurion", CategoryID: "c1", XP: 20,
			RuleType: entity.RuleMilestone, RuleData: entity.Map{"xp": 100},
		},
	}

	// First validation only fires when the set has exactly one entry.
	s := &Snapshot{
		Member:    entity.Member{XP: 0},
		Activity:  entity.Activity{XpReward: 10},
		Validated: validated(1, entity.ActivityLocal),
	}
	result, err := Compute(s, catalog)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 1)
	require.Equal(t, "first-steps", result.Unlocked[0].ID)

	// The threshold counts the activity reward being committed but not
	// badge bonuses from the same pass.
	s = &Snapshot{
		Member:    entity.Member{XP: 90},
		Activity:  entity.Activity{XpReward: 10},
		Validated: validated(4, entity.ActivityLocal),
	}
	result, err = Compute(s, catalog)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 1)
	require.Equal(t, "centurion", result.Unlocked[0].ID)

	s.Member.XP = 85
	result, err = Compute(s, catalog)
	require.NoError(t, err)
	require.Empty(t, result.Unlocked)
}

func TestCompute_skipsOwnedBadges(t *testing.T) {
	catalog := []entity.Badge{{
		ID: "first-steps", CategoryID: "c1", XP: 5,
		RuleType: entity.RuleMilestone, RuleData: entity.Map{"first_validation": true},
	}}

	s := &Snapshot{
		Activity:    entity.Activity{XpReward: 10},
		Validated:   validated(1, entity.ActivityLocal),
		OwnedBadges: []entity.MemberBadge{{CategoryID: "c1", BadgeID: "first-steps"}},
	}
	result, err := Compute(s, catalog)
	require.NoError(t, err)
	require.Empty(t, result.Unlocked)
	require.Equal(t, 10, result.TotalXP)
}

func TestCompute_deterministicOrder(t *testing.T) {
	// Catalog order in the result is (category id, badge id) regardless of
	// input order.
	catalog := []entity.Badge{
		{ID: "b", CategoryID: "c2", XP: 1, RuleType: entity.RuleCount, RuleData: entity.Map{"count": 1}},
		{ID: "a", CategoryID: "c2", XP: 1, RuleType: entity.RuleCount, RuleData: entity.Map{"count": 1}},
		{ID: "z", CategoryID: "c1", XP: 1, RuleType: entity.RuleCount, RuleData: entity.Map{"count": 1}},
	}

	s := &Snapshot{Validated: validated(1, entity.ActivityLocal)}
	result, err := Compute(s, catalog)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 3)
	require.Equal(t, "z", result.Unlocked[0].ID)
	require.Equal(t, "a", result.Unlocked[1].ID)
	require.Equal(t, "b", result.Unlocked[2].ID)
}

func TestCompute_skipsUndecodableRules(t *testing.T) {
	catalog := []entity.Badge{
		{ID: "broken", CategoryID: "c1", XP: 99, RuleType: "trivia", RuleData: entity.Map{}},
		{ID: "ok", CategoryID: "c1", XP: 5, RuleType: entity.RuleCount, RuleData: entity.Map{"count": 1}},
	}

	s := &Snapshot{Validated: validated(1, entity.ActivityLocal)}
	result, err := Compute(s, catalog)
	require.NoError(t, err)
	require.Len(t, result.Unlocked, 1)
	require.Equal(t, "ok", result.Unlocked[0].ID)
}
