package domain

import (
	"context"
	"database/sql"
	"errors"

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

type UserDomain interface {
	Create(context.Context, *model.CreateMemberRequest) (*model.CreateMemberResponse, error)
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetMember(context.Context, *model.GetMemberRequest) (*model.GetMemberResponse, error)
}

type userDomain struct {
	memberRepo   repository.MemberRepository
	notifier     *Notifier
	roleVerifier *common.GlobalRoleVerifier
}

func NewUserDomain(memberRepo repository.MemberRepository, notifier *Notifier) *userDomain {
	return &userDomain{
		memberRepo:   memberRepo,
		notifier:     notifier,
		roleVerifier: common.NewGlobalRoleVerifier(memberRepo),
	}
}

// Create provisions the engagement profile for an identity the platform's
// sign-in service already vouched for. The referral code is minted here and
// never changes afterwards.
func (d *userDomain) Create(
	ctx context.Context, req *model.CreateMemberRequest,
) (*model.CreateMemberResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when creating member: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.ID == "" || req.DisplayName == "" || req.Email == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an id, a display name, and an email")
	}

	role := entity.RoleMember
	if req.Role != "" {
		var err error
		role, err = enum.ToEnum[entity.GlobalRole](req.Role)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid role %s", req.Role)
		}
	}

	if role == entity.RoleNpoStaff && req.OrganizationID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an organization for npo staff")
	}

	member := &entity.Member{
		Base:         entity.Base{ID: req.ID},
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		Country:      req.Country,
		Languages:    req.Languages,
		Skills:       req.Skills,
		Role:         role,
		ReferralCode: crypto.GenerateReferralCode(xcontext.Configs(ctx).Engagement.ReferralCodeLength),
	}
	if req.OrganizationID != "" {
		member.OrganizationID = sql.NullString{Valid: true, String: req.OrganizationID}
	}

	var referrer *entity.Member
	if req.ReferredByCode != "" {
		var err error
		referrer, err = d.memberRepo.GetByReferralCode(ctx, req.ReferredByCode)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.BadRequest, "Invalid referral code")
			}

			xcontext.Logger(ctx).Errorf("Cannot look up referral code: %v", err)
			return nil, errorx.Unknown
		}

		member.ReferredBy = sql.NullString{Valid: true, String: referrer.ID}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.BadRequest, "Member already exists")
		}

		xcontext.Logger(ctx).Errorf("Cannot create member: %v", err)
		return nil, errorx.Unknown
	}

	var notification *entity.Notification
	if referrer != nil {
		var err error
		notification, err = d.notifier.Referral(ctx, referrer.ID, member)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create referral notification: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	if notification != nil {
		d.notifier.Publish(ctx, notification)
	}

	return &model.CreateMemberResponse{ID: member.ID, ReferralCode: member.ReferralCode}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	member, err := d.memberRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetMeResponse(model.ConvertMember(member))
	return &resp, nil
}

func (d *userDomain) GetMember(
	ctx context.Context, req *model.GetMemberRequest,
) (*model.GetMemberResponse, error) {
	member, err := d.memberRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get member: %v", err)
		return nil, errorx.Unknown
	}

	// Public profiles hide contact details and referral standing.
	member.Email = ""
	member.ReferralCode = ""

	resp := model.GetMemberResponse(model.ConvertMember(member))
	return &resp, nil
}
