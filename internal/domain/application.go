package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/voluntree-lab/backend/internal/common"
	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ApplicationDomain interface {
	Apply(context.Context, *model.ApplyRequest) (*model.ApplyResponse, error)
	SetStatus(context.Context, *model.SetApplicationStatusRequest) (*model.SetApplicationStatusResponse, error)
	GetListForActivity(context.Context, *model.GetActivityApplicationsRequest) (*model.GetActivityApplicationsResponse, error)
	GetMyList(context.Context, *model.GetMyApplicationsRequest) (*model.GetMyApplicationsResponse, error)
	GetPendingCount(context.Context, *model.GetPendingApplicationCountRequest) (*model.GetPendingApplicationCountResponse, error)
}

type applicationDomain struct {
	applicationRepo repository.ApplicationRepository
	activityRepo    repository.ActivityRepository
	memberRepo      repository.MemberRepository
	notifier        *Notifier
	roleVerifier    *common.OrgRoleVerifier
}

func NewApplicationDomain(
	applicationRepo repository.ApplicationRepository,
	activityRepo repository.ActivityRepository,
	memberRepo repository.MemberRepository,
	notifier *Notifier,
) *applicationDomain {
	return &applicationDomain{
		applicationRepo: applicationRepo,
		activityRepo:    activityRepo,
		memberRepo:      memberRepo,
		notifier:        notifier,
		roleVerifier:    common.NewOrgRoleVerifier(memberRepo),
	}
}

func (d *applicationDomain) Apply(
	ctx context.Context, req *model.ApplyRequest,
) (*model.ApplyResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	activity, err := d.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if activity.Status != entity.ActivityOpen {
		return nil, errorx.New(errorx.NotOpen, "Activity is not open")
	}

	_, err = d.applicationRepo.GetLive(ctx, req.ActivityID, userID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyApplied, "You already applied to this activity")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot check existing application: %v", err)
		return nil, errorx.Unknown
	}

	application := &entity.Application{
		Base:        entity.Base{ID: uuid.NewString()},
		ActivityID:  req.ActivityID,
		ApplicantID: userID,
		Status:      entity.ApplicationPending,
		Message:     req.Message,
	}

	// The application pair and the applicants counter commit together.
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.applicationRepo.Create(ctx, application); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create application: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.activityRepo.IncreaseApplicants(ctx, req.ActivityID, 1); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase applicants counter: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ApplyResponse{ApplicationID: application.ID}, nil
}

func (d *applicationDomain) SetStatus(
	ctx context.Context, req *model.SetApplicationStatusRequest,
) (*model.SetApplicationStatusResponse, error) {
	application, err := d.applicationRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found application")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return nil, errorx.Unknown
	}

	target, err := enumApplicationStatus(req.Target)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Target)
	}

	if entity.IsTerminalApplication(application.Status) {
		if application.Status == entity.ApplicationRejected {
			return nil, errorx.New(errorx.AlreadyRejected, "Application was already rejected")
		}

		return nil, errorx.New(errorx.BadRequest,
			"Cannot transition from %s to %s", application.Status, target)
	}

	userID := xcontext.RequestUserID(ctx)
	extra := map[string]any{
		"last_status_updated_by": sql.NullString{Valid: true, String: userID},
	}

	switch target {
	case entity.ApplicationAccepted, entity.ApplicationRejected:
		activity, err := d.activityRepo.GetByID(ctx, application.ActivityID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.roleVerifier.Verify(ctx, activity.OrganizationID); err != nil {
			xcontext.Logger(ctx).Debugf("Permission denied when reviewing application: %v", err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		if req.NpoResponse != "" {
			extra["npo_response"] = sql.NullString{Valid: true, String: req.NpoResponse}
		}

	case entity.ApplicationCancelled:
		if application.ApplicantID != userID {
			return nil, errorx.New(errorx.PermissionDenied, "Only the applicant can cancel")
		}

		if req.CancellationMessage != "" {
			extra["cancellation_message"] = sql.NullString{Valid: true, String: req.CancellationMessage}
		}

	default:
		return nil, errorx.New(errorx.BadRequest, "Cannot transition to %s", target)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.applicationRepo.UpdateStatus(ctx, application.ID, target, extra); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update application status: %v", err)
		return nil, errorx.Unknown
	}

	// Leaving pending only shrinks the counter when the applicant drops out
	// of the live set. Accepted applicants stay counted.
	if target == entity.ApplicationRejected || target == entity.ApplicationCancelled {
		if err := d.activityRepo.IncreaseApplicants(ctx, application.ActivityID, -1); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot decrease applicants counter: %v", err)
			return nil, errorx.Unknown
		}
	}

	var notification *entity.Notification
	if target != entity.ApplicationCancelled {
		notification, err = d.notifier.ApplicationStatus(ctx, application, target, req.NpoResponse)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create status notification: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	if notification != nil {
		d.notifier.Publish(ctx, notification)
	}

	return &model.SetApplicationStatusResponse{}, nil
}

func (d *applicationDomain) GetListForActivity(
	ctx context.Context, req *model.GetActivityApplicationsRequest,
) (*model.GetActivityApplicationsResponse, error) {
	activity, err := d.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, activity.OrganizationID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when listing applications: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	applications, err := d.applicationRepo.GetListForActivity(
		ctx, req.ActivityID, entity.ApplicationStatus(req.Status))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get applications: %v", err)
		return nil, errorx.Unknown
	}

	clientApplications := []model.Application{}
	for i := range applications {
		clientApplications = append(clientApplications, model.ConvertApplication(&applications[i]))
	}

	return &model.GetActivityApplicationsResponse{Applications: clientApplications}, nil
}

func (d *applicationDomain) GetMyList(
	ctx context.Context, req *model.GetMyApplicationsRequest,
) (*model.GetMyApplicationsResponse, error) {
	applications, err := d.applicationRepo.GetListForMember(
		ctx, xcontext.RequestUserID(ctx), entity.ApplicationStatus(req.Status))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get member applications: %v", err)
		return nil, errorx.Unknown
	}

	clientApplications := []model.Application{}
	for i := range applications {
		clientApplications = append(clientApplications, model.ConvertMemberApplication(&applications[i]))
	}

	return &model.GetMyApplicationsResponse{Applications: clientApplications}, nil
}

// GetPendingCount serves the organization dashboard. It is computed from the
// live rows, not from a stored counter.
func (d *applicationDomain) GetPendingCount(
	ctx context.Context, req *model.GetPendingApplicationCountRequest,
) (*model.GetPendingApplicationCountResponse, error) {
	if err := d.roleVerifier.Verify(ctx, req.OrganizationID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when counting applications: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	count, err := d.applicationRepo.CountPendingForOrganization(ctx, req.OrganizationID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count pending applications: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPendingApplicationCountResponse{Count: count}, nil
}

func enumApplicationStatus(s string) (entity.ApplicationStatus, error) {
	switch entity.ApplicationStatus(s) {
	case entity.ApplicationAccepted:
		return entity.ApplicationAccepted, nil
	case entity.ApplicationRejected:
		return entity.ApplicationRejected, nil
	case entity.ApplicationCancelled:
		return entity.ApplicationCancelled, nil
	}

	return "", errors.New("invalid application status")
}
