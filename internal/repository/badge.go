package repository

import (
	"context"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type BadgeRepository interface {
	CreateCategory(ctx context.Context, category *entity.BadgeCategory) error
	GetCategoryByID(ctx context.Context, id string) (*entity.BadgeCategory, error)
	GetAllCategories(ctx context.Context) ([]entity.BadgeCategory, error)
	UpdateCategory(ctx context.Context, id string, fields map[string]any) error
	DeleteCategory(ctx context.Context, id string) error

	Create(ctx context.Context, badge *entity.Badge) error
	Get(ctx context.Context, categoryID, badgeID string) (*entity.Badge, error)
	GetAll(ctx context.Context) ([]entity.Badge, error)
	GetByCategory(ctx context.Context, categoryID string) ([]entity.Badge, error)
	Update(ctx context.Context, categoryID, badgeID string, fields map[string]any) error
	Delete(ctx context.Context, categoryID, badgeID string) error
	DeleteByCategory(ctx context.Context, categoryID string) error

	CreateMemberBadge(ctx context.Context, memberBadge *entity.MemberBadge) error
	GetMemberBadges(ctx context.Context, memberID string) ([]entity.MemberBadge, error)
}

type badgeRepository struct{}

func NewBadgeRepository() BadgeRepository {
	return &badgeRepository{}
}

func (r *badgeRepository) CreateCategory(ctx context.Context, category *entity.BadgeCategory) error {
	return xcontext.DB(ctx).Create(category).Error
}

func (r *badgeRepository) GetCategoryByID(ctx context.Context, id string) (*entity.BadgeCategory, error) {
	result := &entity.BadgeCategory{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) GetAllCategories(ctx context.Context) ([]entity.BadgeCategory, error) {
	result := []entity.BadgeCategory{}
	err := xcontext.DB(ctx).Order("display_order ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) UpdateCategory(ctx context.Context, id string, fields map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.BadgeCategory{}).
		Where("id=?", id).
		Updates(fields)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *badgeRepository) DeleteCategory(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Delete(&entity.BadgeCategory{}, "id=?", id).Error
}

func (r *badgeRepository) Create(ctx context.Context, badge *entity.Badge) error {
	return xcontext.DB(ctx).Create(badge).Error
}

func (r *badgeRepository) Get(ctx context.Context, categoryID, badgeID string) (*entity.Badge, error) {
	result := &entity.Badge{}
	err := xcontext.DB(ctx).
		Take(result, "category_id=? AND id=?", categoryID, badgeID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) GetAll(ctx context.Context) ([]entity.Badge, error) {
	result := []entity.Badge{}
	err := xcontext.DB(ctx).
		Order("category_id ASC, id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) GetByCategory(ctx context.Context, categoryID string) ([]entity.Badge, error) {
	result := []entity.Badge{}
	err := xcontext.DB(ctx).
		Where("category_id=?", categoryID).
		Order("id ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *badgeRepository) Update(
	ctx context.Context, categoryID, badgeID string, fields map[string]any,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Badge{}).
		Where("category_id=? AND id=?", categoryID, badgeID).
		Updates(fields)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *badgeRepository) Delete(ctx context.Context, categoryID, badgeID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Badge{}, "category_id=? AND id=?", categoryID, badgeID).Error
}

func (r *badgeRepository) DeleteByCategory(ctx context.Context, categoryID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Badge{}, "category_id=?", categoryID).Error
}

func (r *badgeRepository) CreateMemberBadge(ctx context.Context, memberBadge *entity.MemberBadge) error {
	return xcontext.DB(ctx).Create(memberBadge).Error
}

func (r *badgeRepository) GetMemberBadges(ctx context.Context, memberID string) ([]entity.MemberBadge, error) {
	result := []entity.MemberBadge{}
	err := xcontext.DB(ctx).
		Where("member_id=?", memberID).
		Order("unlocked_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
