package entity

import (
	"time"

	"github.com/voluntree-lab/backend/pkg/enum"
)

type BadgeCategory struct {
	Base

	Title       string
	Description string
	Order       int `gorm:"column:display_order"`
}

type BadgeRuleType string

var (
	RuleCount     = enum.New(BadgeRuleType("count"))
	RuleCategory  = enum.New(BadgeRuleType("category"))
	RuleReferral  = enum.New(BadgeRuleType("referral"))
	RuleMilestone = enum.New(BadgeRuleType("milestone"))
)

// Badge unlock predicates are data: RuleType selects the rule family and
// RuleData carries its parameters. Adding a badge is a row insert, never an
// engine change.
type Badge struct {
	ID         string        `gorm:"primaryKey"`
	CategoryID string        `gorm:"primaryKey"`
	Category   BadgeCategory `gorm:"foreignKey:CategoryID"`

	Title       string
	Description string
	XP          int
	ImageRef    string

	RuleType BadgeRuleType
	RuleData Map

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MemberBadge records an unlock. Rows are only inserted by the reward
// commit; the engine never revokes a badge.
type MemberBadge struct {
	MemberID   string `gorm:"primaryKey"`
	CategoryID string `gorm:"primaryKey"`
	BadgeID    string `gorm:"primaryKey"`

	UnlockedAt time.Time
}
