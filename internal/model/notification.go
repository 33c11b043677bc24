package model

type Notification struct {
	ID          int64          `json:"id"`
	RecipientID string         `json:"recipient_id,omitempty"`
	Type        string         `json:"type,omitempty"`
	Title       string         `json:"title,omitempty"`
	Body        string         `json:"body,omitempty"`
	Link        string         `json:"link,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"created_at,omitempty"`
	Read        bool           `json:"read"`
}

type GetNotificationsRequest struct {
	Cursor int64 `json:"cursor"`
	Limit  int   `json:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications,omitempty"`
	UnreadCount   int64          `json:"unread_count"`
	NextCursor    int64          `json:"next_cursor,omitempty"`
}

type MarkNotificationReadRequest struct {
	ID int64 `json:"id"`
}

type MarkNotificationReadResponse struct{}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct{}

type ClearNotificationsRequest struct{}

type ClearNotificationsResponse struct{}
