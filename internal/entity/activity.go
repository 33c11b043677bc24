package entity

import (
	"database/sql"
	"time"

	"github.com/voluntree-lab/backend/pkg/enum"
)

type ActivityType string

var (
	ActivityOnline = enum.New(ActivityType("online"))
	ActivityLocal  = enum.New(ActivityType("local"))
	ActivityEvent  = enum.New(ActivityType("event"))
)

type ActivityFrequency string

var (
	FrequencyOnce = enum.New(ActivityFrequency("once"))
	FrequencyRole = enum.New(ActivityFrequency("role"))
)

type ActivityStatus string

var (
	ActivityDraft  = enum.New(ActivityStatus("draft"))
	ActivityOpen   = enum.New(ActivityStatus("open"))
	ActivityClosed = enum.New(ActivityStatus("closed"))
)

type Activity struct {
	Base

	OrganizationID string
	Organization   Organization `gorm:"foreignKey:OrganizationID"`
	CreatorID      string

	Type        ActivityType
	Category    string
	Title       string
	Description string
	Skills      Array[string]
	Frequency   ActivityFrequency
	Country     string
	SDG         int
	Languages   Array[string]

	// XpReward freezes when the activity opens; redemption reads this
	// field from the loaded snapshot, never from client input.
	XpReward int

	Status    ActivityStatus
	StartDate time.Time
	EndDate   sql.NullTime

	// Applicants counts applications in {pending, accepted}. Maintained
	// transactionally with application mutations.
	Applicants int

	// QrToken is present iff Type is local or event and Status is open.
	QrToken         sql.NullString
	QrTokenIssuedAt sql.NullTime
}

// RequiresPresence reports whether completing the activity is proven with a
// QR scan.
func (a *Activity) RequiresPresence() bool {
	return a.Type == ActivityLocal || a.Type == ActivityEvent
}
