package model

type Member struct {
	ID           string   `json:"id,omitempty"`
	DisplayName  string   `json:"display_name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Country      string   `json:"country,omitempty"`
	Languages    []string `json:"languages,omitempty"`
	Skills       []string `json:"skills,omitempty"`
	Role         string   `json:"role,omitempty"`
	XP           int      `json:"xp"`
	ReferralCode string   `json:"referral_code,omitempty"`
}

type CreateMemberRequest struct {
	ID             string   `json:"id"`
	DisplayName    string   `json:"display_name"`
	Email          string   `json:"email"`
	Country        string   `json:"country"`
	Languages      []string `json:"languages"`
	Skills         []string `json:"skills"`
	Role           string   `json:"role"`
	OrganizationID string   `json:"organization_id"`
	ReferredByCode string   `json:"referred_by_code"`
}

type CreateMemberResponse struct {
	ID           string `json:"id"`
	ReferralCode string `json:"referral_code"`
}

type GetMeRequest struct{}

type GetMeResponse Member

type GetMemberRequest struct {
	ID string `json:"id"`
}

type GetMemberResponse Member
