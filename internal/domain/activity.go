package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/voluntree-lab/backend/internal/common"
	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/crypto"
	"github.com/voluntree-lab/backend/pkg/enum"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ActivityDomain interface {
	Create(context.Context, *model.CreateActivityRequest) (*model.CreateActivityResponse, error)
	Update(context.Context, *model.UpdateActivityRequest) (*model.UpdateActivityResponse, error)
	Transition(context.Context, *model.TransitionActivityRequest) (*model.TransitionActivityResponse, error)
	Get(context.Context, *model.GetActivityRequest) (*model.GetActivityResponse, error)
	GetList(context.Context, *model.GetListActivityRequest) (*model.GetListActivityResponse, error)
	GetQR(context.Context, *model.GetActivityQRRequest) (*model.GetActivityQRResponse, error)
}

type activityDomain struct {
	activityRepo repository.ActivityRepository
	orgRepo      repository.OrganizationRepository
	roleVerifier *common.OrgRoleVerifier
}

func NewActivityDomain(
	activityRepo repository.ActivityRepository,
	orgRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
) *activityDomain {
	return &activityDomain{
		activityRepo: activityRepo,
		orgRepo:      orgRepo,
		roleVerifier: common.NewOrgRoleVerifier(memberRepo),
	}
}

func (d *activityDomain) Create(
	ctx context.Context, req *model.CreateActivityRequest,
) (*model.CreateActivityResponse, error) {
	if err := d.roleVerifier.Verify(ctx, req.OrganizationID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when creating activity: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found organization")
		}

		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	activityType, err := enum.ToEnum[entity.ActivityType](req.Type)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid activity type %s", req.Type)
	}

	frequency, err := enum.ToEnum[entity.ActivityFrequency](req.Frequency)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid frequency %s", req.Frequency)
	}

	if activityType == entity.ActivityEvent && frequency != entity.FrequencyOnce {
		return nil, errorx.New(errorx.BadRequest, "Events must have frequency once")
	}

	if req.XpReward < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative xp reward")
	}

	startDate, err := time.Parse(model.DefaultTimeLayout, req.StartDate)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid start date")
	}

	endDate := sql.NullTime{}
	if req.EndDate != "" {
		t, err := time.Parse(model.DefaultTimeLayout, req.EndDate)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid end date")
		}
		endDate = sql.NullTime{Valid: true, Time: t}
	}

	activity := &entity.Activity{
		Base:           entity.Base{ID: uuid.NewString()},
		OrganizationID: req.OrganizationID,
		CreatorID:      xcontext.RequestUserID(ctx),
		Type:           activityType,
		Category:       req.Category,
		Title:          req.Title,
		Description:    req.Description,
		Skills:         req.Skills,
		Frequency:      frequency,
		Country:        req.Country,
		SDG:            req.SDG,
		Languages:      req.Languages,
		XpReward:       req.XpReward,
		Status:         entity.ActivityDraft,
		StartDate:      startDate,
		EndDate:        endDate,
	}

	if err := d.activityRepo.Create(ctx, activity); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create activity: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateActivityResponse{ID: activity.ID}, nil
}

func (d *activityDomain) Update(
	ctx context.Context, req *model.UpdateActivityRequest,
) (*model.UpdateActivityResponse, error) {
	activity, err := d.activityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, activity.OrganizationID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when updating activity: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	// The reward freezes once the activity leaves draft. Redemption always
	// pays the frozen value.
	if activity.Status != entity.ActivityDraft && req.XpReward != activity.XpReward {
		return nil, errorx.New(errorx.BadRequest, "Cannot change xp reward after the activity opened")
	}

	fields := map[string]any{
		"category":    req.Category,
		"title":       req.Title,
		"description": req.Description,
		"skills":      entity.Array[string](req.Skills),
		"country":     req.Country,
		"sdg":         req.SDG,
		"languages":   entity.Array[string](req.Languages),
		"xp_reward":   req.XpReward,
	}

	if req.StartDate != "" {
		startDate, err := time.Parse(model.DefaultTimeLayout, req.StartDate)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid start date")
		}
		fields["start_date"] = startDate
	}

	if req.EndDate != "" {
		endDate, err := time.Parse(model.DefaultTimeLayout, req.EndDate)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid end date")
		}
		fields["end_date"] = sql.NullTime{Valid: true, Time: endDate}
	}

	if err := d.activityRepo.Update(ctx, activity.ID, fields); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update activity: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateActivityResponse{}, nil
}

func (d *activityDomain) Transition(
	ctx context.Context, req *model.TransitionActivityRequest,
) (*model.TransitionActivityResponse, error) {
	activity, err := d.activityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, activity.OrganizationID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when transitioning activity: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	target, err := enum.ToEnum[entity.ActivityStatus](req.Target)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid status %s", req.Target)
	}

	// Repeating the current status is a no-op and preserves the token.
	if target == activity.Status {
		return &model.TransitionActivityResponse{Status: string(activity.Status)}, nil
	}

	fields := map[string]any{}
	switch {
	case activity.Status == entity.ActivityDraft && target == entity.ActivityOpen:
		if activity.RequiresPresence() {
			token, err := crypto.GenerateQRToken(xcontext.Configs(ctx).Engagement.QRTokenBytes)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot generate qr token: %v", err)
				return nil, errorx.Unknown
			}

			fields["qr_token"] = sql.NullString{Valid: true, String: token}
			fields["qr_token_issued_at"] = sql.NullTime{Valid: true, Time: time.Now()}
		}

	case activity.Status == entity.ActivityOpen && target == entity.ActivityClosed:
		// Closing revokes every outstanding QR code.
		fields["qr_token"] = sql.NullString{}
		fields["qr_token_issued_at"] = sql.NullTime{}

	default:
		return nil, errorx.New(errorx.BadRequest,
			"Cannot transition from %s to %s", activity.Status, target)
	}

	err = d.activityRepo.UpdateStatus(ctx, activity.ID, activity.Status, target, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest,
				"Cannot transition from %s to %s", activity.Status, target)
		}

		xcontext.Logger(ctx).Errorf("Cannot update activity status: %v", err)
		return nil, errorx.Unknown
	}

	return &model.TransitionActivityResponse{Status: string(target)}, nil
}

func (d *activityDomain) Get(
	ctx context.Context, req *model.GetActivityRequest,
) (*model.GetActivityResponse, error) {
	activity, err := d.activityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetActivityResponse(model.ConvertActivity(activity))
	return &resp, nil
}

func (d *activityDomain) GetList(
	ctx context.Context, req *model.GetListActivityRequest,
) (*model.GetListActivityResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = cfg.DefaultLimit
	}

	if req.Limit < 0 || req.Limit > cfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Limit must be between 1 and %d", cfg.MaxLimit)
	}

	filter := &repository.ActivityFilter{
		OrganizationID: req.OrganizationID,
		Type:           entity.ActivityType(req.Type),
		Category:       req.Category,
		Status:         entity.ActivityStatus(req.Status),
		Limit:          req.Limit,
	}

	if req.Cursor != "" {
		createdAt, id, err := model.DecodeCursor(req.Cursor)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid cursor")
		}

		filter.CursorCreatedAt = createdAt
		filter.CursorID = id
	}

	activities, err := d.activityRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get activity list: %v", err)
		return nil, errorx.Unknown
	}

	clientActivities := []model.Activity{}
	for i := range activities {
		clientActivities = append(clientActivities, model.ConvertActivity(&activities[i]))
	}

	nextCursor := ""
	if len(activities) == req.Limit {
		last := activities[len(activities)-1]
		nextCursor = model.EncodeCursor(last.CreatedAt, last.ID)
	}

	return &model.GetListActivityResponse{
		Activities: clientActivities,
		NextCursor: nextCursor,
	}, nil
}

// GetQR returns the payload URL encoded into the activity's printed QR code.
func (d *activityDomain) GetQR(
	ctx context.Context, req *model.GetActivityQRRequest,
) (*model.GetActivityQRResponse, error) {
	activity, err := d.activityRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, activity.OrganizationID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when getting qr: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if !activity.RequiresPresence() {
		return nil, errorx.New(errorx.WrongType, "Online activities have no QR code")
	}

	if activity.Status != entity.ActivityOpen || !activity.QrToken.Valid {
		return nil, errorx.New(errorx.NotOpen, "Activity is not open")
	}

	url := model.QRPayloadURL(
		xcontext.Configs(ctx).Engagement.QRBaseURL, activity.ID, activity.QrToken.String)
	return &model.GetActivityQRResponse{URL: url}, nil
}

// verifyQrToken classifies a scanned token against the loaded activity.
// A nil activity and a mismatched token produce the same error so the
// response never discloses whether the activity exists.
func verifyQrToken(activity *entity.Activity, token string) error {
	if activity == nil {
		return errorx.New(errorx.TokenMismatch, "Token does not match")
	}

	if !activity.RequiresPresence() {
		return errorx.New(errorx.WrongType, "Activity cannot be validated by QR")
	}

	if activity.Status != entity.ActivityOpen || !activity.QrToken.Valid {
		return errorx.New(errorx.NotOpen, "Activity is not open")
	}

	if !crypto.ConstantTimeEquals(activity.QrToken.String, token) {
		return errorx.New(errorx.TokenMismatch, "Token does not match")
	}

	return nil
}
