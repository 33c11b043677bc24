package event

import "github.com/voluntree-lab/backend/internal/model"

// NotificationEvent mirrors a persisted notification onto the live channel.
// The payload is always derived from the committed row, never from request
// state.
type NotificationEvent struct {
	Notification model.Notification `json:"notification"`
}

func (NotificationEvent) Op() string {
	return "notification"
}

// ReadyEvent opens a subscription with the recipient's recent history so the
// client can render without a separate fetch.
type ReadyEvent struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unread_count"`
}

func (ReadyEvent) Op() string {
	return "ready"
}
