package entity

import (
	"database/sql"
	"time"

	"github.com/voluntree-lab/backend/pkg/enum"
)

type NotificationType string

var (
	NotificationReward            = enum.New(NotificationType("REWARD"))
	NotificationReminder          = enum.New(NotificationType("REMINDER"))
	NotificationSystem            = enum.New(NotificationType("SYSTEM"))
	NotificationReferral          = enum.New(NotificationType("REFERRAL"))
	NotificationApplicationStatus = enum.New(NotificationType("APPLICATION_STATUS"))
)

// Notification ids are snowflakes, so per-recipient id order is insertion
// order even when created_at collides.
type Notification struct {
	ID int64 `gorm:"primaryKey"`

	RecipientID string `gorm:"index"`
	Recipient   Member `gorm:"foreignKey:RecipientID"`

	Type     NotificationType
	Title    string
	Body     string
	Link     sql.NullString
	Metadata Map

	CreatedAt time.Time
	ReadAt    sql.NullTime
}
