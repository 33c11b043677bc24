package entity

import (
	"database/sql"
	"time"

	"github.com/voluntree-lab/backend/pkg/enum"
)

type ValidationStatus string

var (
	ValidationPending   = enum.New(ValidationStatus("pending"))
	ValidationValidated = enum.New(ValidationStatus("validated"))
	ValidationRejected  = enum.New(ValidationStatus("rejected"))
)

type ValidationSource string

var (
	SourceQR     = enum.New(ValidationSource("qr"))
	SourceManual = enum.New(ValidationSource("manual"))
)

// Validation is the single source of truth for "who completed what, when".
// The unique (activity_id, user_id) index is the reward idempotency key:
// a second concurrent redemption fails on it and is reported as
// AlreadyValidated.
type Validation struct {
	Base

	ActivityID string   `gorm:"uniqueIndex:idx_validations_activity_user"`
	Activity   Activity `gorm:"foreignKey:ActivityID"`

	UserID string `gorm:"uniqueIndex:idx_validations_activity_user"`
	User   Member `gorm:"foreignKey:UserID"`

	Status      ValidationStatus
	Source      ValidationSource
	ValidatedBy string
	ValidatedAt sql.NullTime
	RejectedAt  sql.NullTime
}

// ValidatedActivity is the projection of a member's validated set used by
// the reward computation.
type ValidatedActivity struct {
	ActivityID string
	Type       ActivityType
	SDG        int
	CreatedAt  time.Time
}
