package domain

import (
	"context"
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

type OrganizationDomain interface {
	Create(context.Context, *model.CreateOrganizationRequest) (*model.CreateOrganizationResponse, error)
	Get(context.Context, *model.GetOrganizationRequest) (*model.GetOrganizationResponse, error)
}

type organizationDomain struct {
	orgRepo      repository.OrganizationRepository
	roleVerifier *common.GlobalRoleVerifier
}

func NewOrganizationDomain(
	orgRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
) *organizationDomain {
	return &organizationDomain{
		orgRepo:      orgRepo,
		roleVerifier: common.NewGlobalRoleVerifier(memberRepo),
	}
}

func (d *organizationDomain) Create(
	ctx context.Context, req *model.CreateOrganizationRequest,
) (*model.CreateOrganizationResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when creating organization: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a name")
	}

	org := &entity.Organization{
		Base:      entity.Base{ID: uuid.NewString()},
		Name:      req.Name,
		LogoURL:   req.LogoURL,
		Country:   req.Country,
		Languages: req.Languages,
		SDGs:      req.SDGs,
	}

	if err := d.orgRepo.Create(ctx, org); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create organization: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateOrganizationResponse{ID: org.ID}, nil
}

func (d *organizationDomain) Get(
	ctx context.Context, req *model.GetOrganizationRequest,
) (*model.GetOrganizationResponse, error) {
	org, err := d.orgRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found organization")
		}

		xcontext.Logger(ctx).Errorf("Cannot get organization: %v", err)
		return nil, errorx.Unknown
	}

	resp := model.GetOrganizationResponse(model.ConvertOrganization(org))
	return &resp, nil
}
