package model

type XpHistoryEntry struct {
	ID        string         `json:"id,omitempty"`
	Title     string         `json:"title,omitempty"`
	Points    int            `json:"points"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at,omitempty"`
}

type GetXpHistoryRequest struct {
	Cursor string `json:"cursor"`
	Limit  int    `json:"limit"`
}

type GetXpHistoryResponse struct {
	Entries    []XpHistoryEntry `json:"entries,omitempty"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
