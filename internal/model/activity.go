package model

type Activity struct {
	ID             string   `json:"id,omitempty"`
	OrganizationID string   `json:"organization_id,omitempty"`
	Type           string   `json:"type,omitempty"`
	Category       string   `json:"category,omitempty"`
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	Frequency      string   `json:"frequency,omitempty"`
	Country        string   `json:"country,omitempty"`
	SDG            int      `json:"sdg,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	XpReward       int      `json:"xp_reward"`
	Status         string   `json:"status,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	EndDate        string   `json:"end_date,omitempty"`
	Applicants     int      `json:"applicants"`
	CreatedAt      string   `json:"created_at,omitempty"`
}

type CreateActivityRequest struct {
	OrganizationID string   `json:"organization_id"`
	Type           string   `json:"type"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Skills         []string `json:"skills"`
	Frequency      string   `json:"frequency"`
	Country        string   `json:"country"`
	SDG            int      `json:"sdg"`
	Languages      []string `json:"languages"`
	XpReward       int      `json:"xp_reward"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
}

type CreateActivityResponse struct {
	ID string `json:"id"`
}

type UpdateActivityRequest struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Country     string   `json:"country"`
	SDG         int      `json:"sdg"`
	Languages   []string `json:"languages"`
	XpReward    int      `json:"xp_reward"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
}

type UpdateActivityResponse struct{}

type TransitionActivityRequest struct {
	ID     string `json:"id"`
	Target string `json:"target"`
}

type TransitionActivityResponse struct {
	Status string `json:"status"`
}

type GetActivityRequest struct {
	ID string `json:"id"`
}

type GetActivityResponse Activity

type GetListActivityRequest struct {
	OrganizationID string `json:"organization_id"`
	Type           string `json:"type"`
	Category       string `json:"category"`
	Status         string `json:"status"`
	Cursor         string `json:"cursor"`
	Limit          int    `json:"limit"`
}

type GetListActivityResponse struct {
	Activities []Activity `json:"activities,omitempty"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

type GetActivityQRRequest struct {
	ID string `json:"id"`
}

type GetActivityQRResponse struct {
	URL string `json:"url"`
}
