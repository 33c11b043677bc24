package model

type BadgeCategory struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Order       int    `json:"order"`
}

type Badge struct {
	ID          string         `json:"id,omitempty"`
	CategoryID  string         `json:"category_id,omitempty"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	XP          int            `json:"xp"`
	ImageRef    string         `json:"image_ref,omitempty"`
	RuleType    string         `json:"rule_type,omitempty"`
	RuleData    map[string]any `json:"rule_data,omitempty"`
}

type MemberBadge struct {
	CategoryID string `json:"category_id,omitempty"`
	BadgeID    string `json:"badge_id,omitempty"`
	UnlockedAt string `json:"unlocked_at,omitempty"`
}

type CreateBadgeCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type CreateBadgeCategoryResponse struct {
	ID string `json:"id"`
}

type GetBadgeCategoriesRequest struct{}

type GetBadgeCategoriesResponse struct {
	Categories []BadgeCategory `json:"categories,omitempty"`
}

type UpdateBadgeCategoryRequest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type UpdateBadgeCategoryResponse struct{}

type DeleteBadgeCategoryRequest struct {
	ID string `json:"id"`
}

type DeleteBadgeCategoryResponse struct{}

type CreateBadgeRequest struct {
	CategoryID  string         `json:"category_id"`
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	XP          int            `json:"xp"`
	ImageRef    string         `json:"image_ref"`
	RuleType    string         `json:"rule_type"`
	RuleData    map[string]any `json:"rule_data"`
}

type CreateBadgeResponse struct {
	ID string `json:"id"`
}

type GetBadgesRequest struct {
	CategoryID string `json:"category_id"`
}

type GetBadgesResponse struct {
	Badges []Badge `json:"badges,omitempty"`
}

type UpdateBadgeRequest struct {
	CategoryID  string         `json:"category_id"`
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	XP          int            `json:"xp"`
	ImageRef    string         `json:"image_ref"`
	RuleData    map[string]any `json:"rule_data"`
}

type UpdateBadgeResponse struct{}

type DeleteBadgeRequest struct {
	CategoryID string `json:"category_id"`
	ID         string `json:"id"`
}

type DeleteBadgeResponse struct{}

type UploadBadgeImageRequest struct{}

type UploadBadgeImageResponse struct {
	URL string `json:"url"`
}

type GetMyBadgesRequest struct{}

type GetMyBadgesResponse struct {
	Badges []MemberBadge `json:"badges,omitempty"`
}
