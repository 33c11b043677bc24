package model

type Organization struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name,omitempty"`
	LogoURL   string   `json:"logo_url,omitempty"`
	Country   string   `json:"country,omitempty"`
	Languages []string `json:"languages,omitempty"`
	SDGs      []int    `json:"sdgs,omitempty"`
}

type CreateOrganizationRequest struct {
	Name      string   `json:"name"`
	LogoURL   string   `json:"logo_url"`
	Country   string   `json:"country"`
	Languages []string `json:"languages"`
	SDGs      []int    `json:"sdgs"`
}

type CreateOrganizationResponse struct {
	ID string `json:"id"`
}

type GetOrganizationRequest struct {
	ID string `json:"id"`
}

type GetOrganizationResponse Organization
