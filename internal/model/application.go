package model

type Application struct {
	ID                  string `json:"id,omitempty"`
	ActivityID          string `json:"activity_id,omitempty"`
	ApplicantID         string `json:"applicant_id,omitempty"`
	Status              string `json:"status,omitempty"`
	Message             string `json:"message,omitempty"`
	NpoResponse         string `json:"npo_response,omitempty"`
	CancellationMessage string `json:"cancellation_message,omitempty"`
	CreatedAt           string `json:"created_at,omitempty"`
	UpdatedAt           string `json:"updated_at,omitempty"`
}

type ApplyRequest struct {
	ActivityID string `json:"activity_id"`
	Message    string `json:"message"`
}

type ApplyResponse struct {
	ApplicationID string `json:"application_id"`
}

type SetApplicationStatusRequest struct {
	ID                  string `json:"id"`
	Target              string `json:"target"`
	NpoResponse         string `json:"npo_response"`
	CancellationMessage string `json:"cancellation_message"`
}

type SetApplicationStatusResponse struct{}

type GetActivityApplicationsRequest struct {
	ActivityID string `json:"activity_id"`
	Status     string `json:"status"`
}

type GetActivityApplicationsResponse struct {
	Applications []Application `json:"applications,omitempty"`
}

type GetMyApplicationsRequest struct {
	Status string `json:"status"`
}

type GetMyApplicationsResponse struct {
	Applications []Application `json:"applications,omitempty"`
}

type GetPendingApplicationCountRequest struct {
	OrganizationID string `json:"organization_id"`
}

type GetPendingApplicationCountResponse struct {
	Count int64 `json:"count"`
}
