package model

type GrantedBadge struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	XP    int    `json:"xp"`
}

type ValidateRequest struct {
	ActivityID string `json:"activity_id"`
	Token      string `json:"token"`
}

type ValidateResponse struct {
	XpReward      int            `json:"xp_reward"`
	ActivityXP    int            `json:"activity_xp"`
	BadgeXP       int            `json:"badge_xp"`
	TotalXP       int            `json:"total_xp"`
	BadgesGranted []GrantedBadge `json:"badges_granted"`
}

// RedeemQRRequest is the landing endpoint the QR payload points at. It
// answers with an HTTP redirect instead of a JSON body.
type RedeemQRRequest struct {
	ActivityID string `json:"activityId"`
	Token      string `json:"token"`
}

type RedeemQRResponse struct{}

type Validation struct {
	ActivityID string `json:"activity_id,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Source     string `json:"source,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type GetActivityValidationsRequest struct {
	ActivityID string `json:"activity_id"`
}

type GetActivityValidationsResponse struct {
	Validations []Validation `json:"validations,omitempty"`
}
