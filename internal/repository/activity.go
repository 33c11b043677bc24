package repository

import (
	"context"
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ActivityFilter struct {
	OrganizationID string
	Type           entity.ActivityType
	Category       string
	Status         entity.ActivityStatus

	// Cursor fields select records strictly older than the last page.
	CursorCreatedAt time.Time
	CursorID        string

	Limit int
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	GetByID(ctx context.Context, id string) (*entity.Activity, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	UpdateStatus(ctx context.Context, id string, current, target entity.ActivityStatus, fields map[string]any) error
	GetList(ctx context.Context, filter *ActivityFilter) ([]entity.Activity, error)
	IncreaseApplicants(ctx context.Context, id string, delta int) error
}

type activityRepository struct{}

func NewActivityRepository() ActivityRepository {
	return &activityRepository{}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	return xcontext.DB(ctx).Create(activity).Error
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*entity.Activity, error) {
	result := &entity.Activity{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Activity{}).
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

// UpdateStatus guards the write with the expected current status, so two
// racing transitions cannot both apply.
func (r *activityRepository) UpdateStatus(
	ctx context.Context, id string, current, target entity.ActivityStatus, fields map[string]any,
) error {
	if fields == nil {
		fields = map[string]any{}
	}
	fields["status"] = target

	tx := xcontext.DB(ctx).
		Model(&entity.Activity{}).
		Where("id=? AND status=?", id, current).
		Updates(fields)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *activityRepository) GetList(
	ctx context.Context, filter *ActivityFilter,
) ([]entity.Activity, error) {
	result := []entity.Activity{}
	tx := xcontext.DB(ctx).
		Limit(filter.Limit).
		Order("created_at DESC, id DESC")

	if filter.OrganizationID != "" {
		tx = tx.Where("organization_id=?", filter.OrganizationID)
	}

	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	if filter.Category != "" {
		tx = tx.Where("category=?", filter.Category)
	}

	if filter.Status != "" {
		tx = tx.Where("status=?", filter.Status)
	}

	if !filter.CursorCreatedAt.IsZero() {
		tx = tx.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			filter.CursorCreatedAt, filter.CursorCreatedAt, filter.CursorID,
		)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *activityRepository) IncreaseApplicants(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Activity{}).
		Where("id=?", id).
		Update("applicants", gorm.Expr("applicants+?", delta))
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
