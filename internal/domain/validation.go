package domain

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/voluntree-lab/backend/internal/common"
	"github.com/voluntree-lab/backend/internal/domain/reward"
	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"github.com/voluntree-lab/backend/pkg/xredis"
	"gorm.io/gorm"
)

type ValidationDomain interface {
	Validate(context.Context, *model.ValidateRequest) (*model.ValidateResponse, error)
	RedeemQR(context.Context, *model.RedeemQRRequest) (*model.RedeemQRResponse, error)
	GetListForActivity(context.Context, *model.GetActivityValidationsRequest) (*model.GetActivityValidationsResponse, error)
}

type validationDomain struct {
	validationRepo  repository.ValidationRepository
	activityRepo    repository.ActivityRepository
	applicationRepo repository.ApplicationRepository
	memberRepo      repository.MemberRepository
	badgeRepo       repository.BadgeRepository
	xpHistoryRepo   repository.XpHistoryRepository
	notifier        *Notifier
	redisClient     xredis.Client
	roleVerifier    *common.OrgRoleVerifier
}

func NewValidationDomain(
	validationRepo repository.ValidationRepository,
	activityRepo repository.ActivityRepository,
	applicationRepo repository.ApplicationRepository,
	memberRepo repository.MemberRepository,
	badgeRepo repository.BadgeRepository,
	xpHistoryRepo repository.XpHistoryRepository,
	notifier *Notifier,
	redisClient xredis.Client,
) *validationDomain {
	return &validationDomain{
		validationRepo:  validationRepo,
		activityRepo:    activityRepo,
		applicationRepo: applicationRepo,
		memberRepo:      memberRepo,
		badgeRepo:       badgeRepo,
		xpHistoryRepo:   xpHistoryRepo,
		notifier:        notifier,
		redisClient:     redisClient,
		roleVerifier:    common.NewOrgRoleVerifier(memberRepo),
	}
}

// Validate is the QR redemption path. Everything before the transaction is a
// read; everything inside either commits together or not at all.
func (d *validationDomain) Validate(
	ctx context.Context, req *model.ValidateRequest,
) (*model.ValidateResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	member, err := d.memberRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "You need to sign in first")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	activity, err := d.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	// A missing activity and a bad token are indistinguishable on the wire.
	if err := verifyQrToken(activity, req.Token); err != nil {
		return nil, err
	}

	if err := d.preflight(ctx, activity, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	validation := &entity.Validation{
		Base:        entity.Base{ID: uuid.NewString()},
		ActivityID:  activity.ID,
		UserID:      userID,
		Status:      entity.ValidationValidated,
		Source:      entity.SourceQR,
		ValidatedBy: userID,
		ValidatedAt: sql.NullTime{Valid: true, Time: now},
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	// The unique pair index is the idempotency key. Under a race, exactly
	// one insert wins; the loser surfaces the same conflict the preflight
	// would have reported.
	if err := d.validationRepo.Create(ctx, validation); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyValidated, "You already validated this activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot create validation: %v", err)
		return nil, errorx.Unknown
	}

	validated, err := d.validationRepo.GetValidatedActivities(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get validated activities: %v", err)
		return nil, errorx.Unknown
	}

	ownedBadges, err := d.badgeRepo.GetMemberBadges(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get member badges: %v", err)
		return nil, errorx.Unknown
	}

	catalog, err := d.badgeRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badge catalog: %v", err)
		return nil, errorx.Unknown
	}

	referrals, err := d.memberRepo.CountAcceptedReferrals(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count referrals: %v", err)
		return nil, errorx.Unknown
	}

	result, err := reward.Compute(&reward.Snapshot{
		Member:            *member,
		Activity:          *activity,
		Validated:         validated,
		OwnedBadges:       ownedBadges,
		AcceptedReferrals: int(referrals),
	}, catalog)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot compute reward: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.memberRepo.IncreaseXP(ctx, userID, result.TotalXP); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase member xp: %v", err)
		return nil, errorx.Unknown
	}

	grantedIDs := []string{}
	grantedBadges := []model.GrantedBadge{}
	for _, b := range result.Unlocked {
		err := d.badgeRepo.CreateMemberBadge(ctx, &entity.MemberBadge{
			MemberID:   userID,
			CategoryID: b.CategoryID,
			BadgeID:    b.ID,
			UnlockedAt: now,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot grant badge: %v", err)
			return nil, errorx.Unknown
		}

		grantedIDs = append(grantedIDs, b.ID)
		grantedBadges = append(grantedBadges, model.GrantedBadge{ID: b.ID, Title: b.Title, XP: b.XP})
	}

	// One combined history entry per validation. Badge bonuses are folded in
	// with provenance in the metadata instead of separate rows.
	err = d.xpHistoryRepo.Create(ctx, &entity.XpHistoryEntry{
		Base:      entity.Base{ID: uuid.NewString()},
		UserID:    userID,
		Title:     activity.Title,
		Points:    result.TotalXP,
		SourceRef: validation.ID,
		Metadata: entity.Map{
			"activityId": activity.ID,
			"activityXP": result.ActivityXP,
			"badgeXP":    result.BadgeXP,
			"badgeXPMap": result.BadgeXPMap,
		},
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot append xp history: %v", err)
		return nil, errorx.Unknown
	}

	notification, err := d.notifier.Reward(
		ctx, userID, activity,
		result.ActivityXP, result.BadgeXP, result.TotalXP,
		grantedIDs, result.BadgeXPMap,
	)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create reward notification: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	// Post-commit side channels. Both are best-effort; the commit is the
	// source of truth and they are recoverable from it.
	d.notifier.Publish(ctx, notification)
	d.bumpLeaderboard(ctx, userID, result.TotalXP)

	return &model.ValidateResponse{
		XpReward:      activity.XpReward,
		ActivityXP:    result.ActivityXP,
		BadgeXP:       result.BadgeXP,
		TotalXP:       result.TotalXP,
		BadgesGranted: grantedBadges,
	}, nil
}

// RedeemQR backs the URL printed in the QR code. It runs the same redemption
// and answers with a dashboard redirect instead of JSON.
func (d *validationDomain) RedeemQR(
	ctx context.Context, req *model.RedeemQRRequest,
) (*model.RedeemQRResponse, error) {
	dashboard := xcontext.Configs(ctx).Engagement.DashboardURL

	resp, err := d.Validate(ctx, &model.ValidateRequest{
		ActivityID: req.ActivityID,
		Token:      req.Token,
	})

	var location string
	switch {
	case err == nil:
		activity, aerr := d.activityRepo.GetByID(ctx, req.ActivityID)
		if aerr != nil {
			xcontext.Logger(ctx).Errorf("Cannot reload activity after redeem: %v", aerr)
			location = model.ValidationErrorRedirect(dashboard, "Request failed")
			break
		}

		badgeIDs := []string{}
		for _, b := range resp.BadgesGranted {
			badgeIDs = append(badgeIDs, b.ID)
		}

		location = model.ValidationSuccessRedirect(
			dashboard, resp.TotalXP, activity.Title, activity.ID, badgeIDs)

	case isAlreadyValidated(err):
		location = model.ValidationAlreadyValidatedRedirect(dashboard)

	default:
		location = model.ValidationErrorRedirect(dashboard, err.Error())
	}

	http.Redirect(
		xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx),
		location, http.StatusSeeOther,
	)

	return nil, nil
}

func (d *validationDomain) GetListForActivity(
	ctx context.Context, req *model.GetActivityValidationsRequest,
) (*model.GetActivityValidationsResponse, error) {
	activity, err := d.activityRepo.GetByID(ctx, req.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get activity: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.roleVerifier.Verify(ctx, activity.OrganizationID); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when listing validations: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	validations, err := d.validationRepo.GetListForActivity(ctx, req.ActivityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get validations: %v", err)
		return nil, errorx.Unknown
	}

	clientValidations := []model.Validation{}
	for i := range validations {
		clientValidations = append(clientValidations, model.ConvertValidation(&validations[i]))
	}

	return &model.GetActivityValidationsResponse{Validations: clientValidations}, nil
}

// preflight classifies the member's standing before any write happens.
func (d *validationDomain) preflight(
	ctx context.Context, activity *entity.Activity, userID string,
) error {
	existing, err := d.validationRepo.Get(ctx, activity.ID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get validation: %v", err)
		return errorx.Unknown
	}

	if existing != nil {
		if existing.Status == entity.ValidationRejected {
			return errorx.New(errorx.AlreadyRejected, "Your participation was rejected")
		}

		return errorx.New(errorx.AlreadyValidated, "You already validated this activity")
	}

	// Events are open-door; local and online activities require an accepted
	// application.
	if activity.Type == entity.ActivityEvent {
		return nil
	}

	application, err := d.applicationRepo.GetLive(ctx, activity.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.IneligibleForActivity, "You are not accepted for this activity")
		}

		xcontext.Logger(ctx).Errorf("Cannot get application: %v", err)
		return errorx.Unknown
	}

	if application.Status != entity.ApplicationAccepted {
		return errorx.New(errorx.IneligibleForActivity, "You are not accepted for this activity")
	}

	return nil
}

func (d *validationDomain) bumpLeaderboard(ctx context.Context, userID string, totalXP int) {
	if d.redisClient == nil || totalXP == 0 {
		return
	}

	period := time.Now().Format("01-2006")
	err := d.redisClient.ZIncrBy(ctx, common.RedisKeyLeaderboard(period), int64(totalXP), userID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard: %v", err)
	}
}

func isAlreadyValidated(err error) bool {
	var xerr errorx.Error
	return errors.As(err, &xerr) && xerr.Code == uint64(errorx.AlreadyValidated)
}
