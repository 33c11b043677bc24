package entity

import (
	"database/sql"

	"github.com/voluntree-lab/backend/pkg/enum"
)

type ApplicationStatus string

var (
	ApplicationPending   = enum.New(ApplicationStatus("pending"))
	ApplicationAccepted  = enum.New(ApplicationStatus("accepted"))
	ApplicationRejected  = enum.New(ApplicationStatus("rejected"))
	ApplicationCancelled = enum.New(ApplicationStatus("cancelled"))
)

// IsTerminalApplication reports whether no further transition can leave s.
// accepted is terminal for the application itself but still enables
// validation.
func IsTerminalApplication(s ApplicationStatus) bool {
	return s == ApplicationAccepted || s == ApplicationRejected || s == ApplicationCancelled
}

// Application is the activity-side record. MemberApplication mirrors it into
// the applicant's inbox; both rows share the same ID and must carry the same
// status and updated_at after any transition.
type Application struct {
	Base

	// The pair is not uniquely indexed: a member may apply again after a
	// rejected or cancelled application. Apply checks for a live record.
	ActivityID string   `gorm:"index:idx_applications_activity_applicant"`
	Activity   Activity `gorm:"foreignKey:ActivityID"`

	ApplicantID string `gorm:"index:idx_applications_activity_applicant"`
	Applicant   Member `gorm:"foreignKey:ApplicantID"`

	Status              ApplicationStatus
	Message             string
	NpoResponse         sql.NullString
	CancellationMessage sql.NullString
	LastStatusUpdatedBy sql.NullString
}

type MemberApplication struct {
	Base

	MemberID   string `gorm:"index"`
	ActivityID string

	Status              ApplicationStatus
	Message             string
	NpoResponse         sql.NullString
	CancellationMessage sql.NullString
	LastStatusUpdatedBy sql.NullString
}
