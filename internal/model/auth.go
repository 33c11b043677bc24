package model

// AccessToken is the verified claims object issued by the external sign-in
// service. Role and OrganizationID are read-only claims here; the resolver
// never writes them back.
type AccessToken struct {
	ID             string `json:"id"`
	Role           string `json:"role"`
	OrganizationID string `json:"organization_id,omitempty"`
}
