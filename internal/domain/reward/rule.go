package reward

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/voluntree-lab/backend/internal/entity"
)

// A rule decides whether a snapshot satisfies a badge's unlock predicate.
// Rules are pure; they never see storage or time.
type rule interface {
	unlocked(s *Snapshot) bool
}

// countRule unlocks after a number of validated activities, optionally
// restricted to one activity type.
type countRule struct {
	Count int    `mapstructure:"count"`
	Type  string `mapstructure:"type"`
}

func (r *countRule) unlocked(s *Snapshot) bool {
	n := 0
	for _, v := range s.Validated {
		if r.Type != "" && string(v.Type) != r.Type {
			continue
		}
		n++
	}

	return n >= r.Count
}

// categoryRule unlocks on sustainable development goal coverage. With a
// specific goal it counts validated activities serving it; with sdg left
// zero it counts distinct goals covered.
type categoryRule struct {
	SDG   int `mapstructure:"sdg"`
	Count int `mapstructure:"count"`
}

func (r *categoryRule) unlocked(s *Snapshot) bool {
	if r.SDG != 0 {
		n := 0
		for _, v := range s.Validated {
			if v.SDG == r.SDG {
				n++
			}
		}

		return n >= r.Count
	}

	distinct := map[int]struct{}{}
	for _, v := range s.Validated {
		if v.SDG != 0 {
			distinct[v.SDG] = struct{}{}
		}
	}

	return len(distinct) >= r.Count
}

// referralRule unlocks after a number of referred members had an application
// accepted.
type referralRule struct {
	Count int `mapstructure:"count"`
}

func (r *referralRule) unlocked(s *Snapshot) bool {
	return s.AcceptedReferrals >= r.Count
}

// milestoneRule unlocks on one-off achievements: the first validation ever,
// or an xp balance threshold. The balance counts the activity reward being
// committed but not badge bonuses unlocked in the same pass.
type milestoneRule struct {
	XP              int  `mapstructure:"xp"`
	FirstValidation bool `mapstructure:"first_validation"`
}

func (r *milestoneRule) unlocked(s *Snapshot) bool {
	if r.FirstValidation {
		return len(s.Validated) == 1
	}

	return r.XP > 0 && s.Member.XP+s.Activity.XpReward >= r.XP
}

func newRule(ruleType entity.BadgeRuleType, data map[string]any) (rule, error) {
	var r rule
	switch ruleType {
	case entity.RuleCount:
		r = &countRule{}
	case entity.RuleCategory:
		r = &categoryRule{}
	case entity.RuleReferral:
		r = &referralRule{}
	case entity.RuleMilestone:
		r = &milestoneRule{}
	default:
		return nil, fmt.Errorf("unknown rule type %s", ruleType)
	}

	if err := mapstructure.Decode(data, r); err != nil {
		return nil, err
	}

	return r, nil
}
