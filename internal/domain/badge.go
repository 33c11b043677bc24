package domain

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/voluntree-lab/backend/internal/common"
	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/enum"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/storage"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BadgeDomain interface {
	CreateCategory(context.Context, *model.CreateBadgeCategoryRequest) (*model.CreateBadgeCategoryResponse, error)
	GetCategories(context.Context, *model.GetBadgeCategoriesRequest) (*model.GetBadgeCategoriesResponse, error)
	UpdateCategory(context.Context, *model.UpdateBadgeCategoryRequest) (*model.UpdateBadgeCategoryResponse, error)
	DeleteCategory(context.Context, *model.DeleteBadgeCategoryRequest) (*model.DeleteBadgeCategoryResponse, error)
	CreateBadge(context.Context, *model.CreateBadgeRequest) (*model.CreateBadgeResponse, error)
	GetBadges(context.Context, *model.GetBadgesRequest) (*model.GetBadgesResponse, error)
	UpdateBadge(context.Context, *model.UpdateBadgeRequest) (*model.UpdateBadgeResponse, error)
	DeleteBadge(context.Context, *model.DeleteBadgeRequest) (*model.DeleteBadgeResponse, error)
	UploadImage(context.Context, *model.UploadBadgeImageRequest) (*model.UploadBadgeImageResponse, error)
	GetMyBadges(context.Context, *model.GetMyBadgesRequest) (*model.GetMyBadgesResponse, error)
}

type badgeDomain struct {
	badgeRepo    repository.BadgeRepository
	fileStorage  storage.Storage
	roleVerifier *common.GlobalRoleVerifier
}

func NewBadgeDomain(
	badgeRepo repository.BadgeRepository,
	memberRepo repository.MemberRepository,
	fileStorage storage.Storage,
) *badgeDomain {
	return &badgeDomain{
		badgeRepo:    badgeRepo,
		fileStorage:  fileStorage,
		roleVerifier: common.NewGlobalRoleVerifier(memberRepo),
	}
}

func (d *badgeDomain) CreateCategory(
	ctx context.Context, req *model.CreateBadgeCategoryRequest,
) (*model.CreateBadgeCategoryResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when creating category: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.Title == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a title")
	}

	category := &entity.BadgeCategory{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
	}

	if err := d.badgeRepo.CreateCategory(ctx, category); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create badge category: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateBadgeCategoryResponse{ID: category.ID}, nil
}

func (d *badgeDomain) GetCategories(
	ctx context.Context, req *model.GetBadgeCategoriesRequest,
) (*model.GetBadgeCategoriesResponse, error) {
	categories, err := d.badgeRepo.GetAllCategories(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badge categories: %v", err)
		return nil, errorx.Unknown
	}

	clientCategories := []model.BadgeCategory{}
	for i := range categories {
		clientCategories = append(clientCategories, model.ConvertBadgeCategory(&categories[i]))
	}

	return &model.GetBadgeCategoriesResponse{Categories: clientCategories}, nil
}

func (d *badgeDomain) UpdateCategory(
	ctx context.Context, req *model.UpdateBadgeCategoryRequest,
) (*model.UpdateBadgeCategoryResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when updating category: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	err := d.badgeRepo.UpdateCategory(ctx, req.ID, map[string]any{
		"title":         req.Title,
		"description":   req.Description,
		"display_order": req.Order,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found category")
		}

		xcontext.Logger(ctx).Errorf("Cannot update badge category: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateBadgeCategoryResponse{}, nil
}

// DeleteCategory removes the category and everything under it in one
// transaction.
func (d *badgeDomain) DeleteCategory(
	ctx context.Context, req *model.DeleteBadgeCategoryRequest,
) (*model.DeleteBadgeCategoryResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when deleting category: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.badgeRepo.GetCategoryByID(ctx, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found category")
		}

		xcontext.Logger(ctx).Errorf("Cannot get badge category: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.badgeRepo.DeleteByCategory(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete badges of category: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.badgeRepo.DeleteCategory(ctx, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete badge category: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.DeleteBadgeCategoryResponse{}, nil
}

func (d *badgeDomain) CreateBadge(
	ctx context.Context, req *model.CreateBadgeRequest,
) (*model.CreateBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when creating badge: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.badgeRepo.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found category")
		}

		xcontext.Logger(ctx).Errorf("Cannot get badge category: %v", err)
		return nil, errorx.Unknown
	}

	ruleType, err := enum.ToEnum[entity.BadgeRuleType](req.RuleType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid rule type %s", req.RuleType)
	}

	if req.XP < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative xp")
	}

	raw := req.ID
	if raw == "" {
		raw = req.Title
	}

	id := NormalizeBadgeID(raw)
	if id == "" {
		return nil, errorx.New(errorx.BadRequest, "Require an id or title")
	}

	badge := &entity.Badge{
		ID:          id,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		XP:          req.XP,
		ImageRef:    req.ImageRef,
		RuleType:    ruleType,
		RuleData:    req.RuleData,
	}

	if err := d.badgeRepo.Create(ctx, badge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.BadRequest, "Badge %s already exists in this category", id)
		}

		xcontext.Logger(ctx).Errorf("Cannot create badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateBadgeResponse{ID: badge.ID}, nil
}

func (d *badgeDomain) GetBadges(
	ctx context.Context, req *model.GetBadgesRequest,
) (*model.GetBadgesResponse, error) {
	var badges []entity.Badge
	var err error
	if req.CategoryID != "" {
		badges, err = d.badgeRepo.GetByCategory(ctx, req.CategoryID)
	} else {
		badges, err = d.badgeRepo.GetAll(ctx)
	}
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get badges: %v", err)
		return nil, errorx.Unknown
	}

	clientBadges := []model.Badge{}
	for i := range badges {
		clientBadges = append(clientBadges, model.ConvertBadge(&badges[i]))
	}

	return &model.GetBadgesResponse{Badges: clientBadges}, nil
}

func (d *badgeDomain) UpdateBadge(
	ctx context.Context, req *model.UpdateBadgeRequest,
) (*model.UpdateBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when updating badge: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if req.XP < 0 {
		return nil, errorx.New(errorx.BadRequest, "Require a non-negative xp")
	}

	fields := map[string]any{
		"title":       req.Title,
		"description": req.Description,
		"xp":          req.XP,
	}

	if req.ImageRef != "" {
		fields["image_ref"] = req.ImageRef
	}

	if req.RuleData != nil {
		fields["rule_data"] = entity.Map(req.RuleData)
	}

	if err := d.badgeRepo.Update(ctx, req.CategoryID, req.ID, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found badge")
		}

		xcontext.Logger(ctx).Errorf("Cannot update badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateBadgeResponse{}, nil
}

func (d *badgeDomain) DeleteBadge(
	ctx context.Context, req *model.DeleteBadgeRequest,
) (*model.DeleteBadgeResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when deleting badge: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	if _, err := d.badgeRepo.Get(ctx, req.CategoryID, req.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found badge")
		}

		xcontext.Logger(ctx).Errorf("Cannot get badge: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.badgeRepo.Delete(ctx, req.CategoryID, req.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete badge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteBadgeResponse{}, nil
}

func (d *badgeDomain) UploadImage(
	ctx context.Context, req *model.UploadBadgeImageRequest,
) (*model.UploadBadgeImageResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.GlobalAdminRoles...); err != nil {
		xcontext.Logger(ctx).Debugf("Permission denied when uploading image: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	uresp, err := common.ProcessBadgeImage(ctx, d.fileStorage, "image")
	if err != nil {
		return nil, err
	}

	return &model.UploadBadgeImageResponse{URL: uresp[0].Url}, nil
}

func (d *badgeDomain) GetMyBadges(
	ctx context.Context, req *model.GetMyBadgesRequest,
) (*model.GetMyBadgesResponse, error) {
	memberBadges, err := d.badgeRepo.GetMemberBadges(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get member badges: %v", err)
		return nil, errorx.Unknown
	}

	clientBadges := []model.MemberBadge{}
	for i := range memberBadges {
		clientBadges = append(clientBadges, model.ConvertMemberBadge(&memberBadges[i]))
	}

	return &model.GetMyBadgesResponse{Badges: clientBadges}, nil
}

// NormalizeBadgeID lowercases, replaces every non-alphanumeric run with a
// single hyphen, and trims hyphens from both ends.
func NormalizeBadgeID(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
