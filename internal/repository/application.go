package repository

import (
	"context"
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	GetByID(ctx context.Context, id string) (*entity.Application, error)
	GetLive(ctx context.Context, activityID, applicantID string) (*entity.Application, error)
	UpdateStatus(ctx context.Context, id string, status entity.ApplicationStatus, extra map[string]any) error
	GetListForActivity(ctx context.Context, activityID string, status entity.ApplicationStatus) ([]entity.Application, error)
	GetListForMember(ctx context.Context, memberID string, status entity.ApplicationStatus) ([]entity.MemberApplication, error)
	CountPendingForOrganization(ctx context.Context, organizationID string) (int64, error)
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

// Create writes the activity-side record and the member-side mirror. Both
// carry the same id, status, and timestamps. The caller must hold a
// transaction so the pair never diverges.
func (r *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	if err := xcontext.DB(ctx).Create(application).Error; err != nil {
		return err
	}

	mirror := &entity.MemberApplication{
		Base: entity.Base{
			ID:        application.ID,
			CreatedAt: application.CreatedAt,
			UpdatedAt: application.UpdatedAt,
		},
		MemberID:   application.ApplicantID,
		ActivityID: application.ActivityID,
		Status:     application.Status,
		Message:    application.Message,
	}

	return xcontext.DB(ctx).Create(mirror).Error
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*entity.Application, error) {
	result := &entity.Application{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetLive returns the member's non-terminal application for the activity.
func (r *applicationRepository) GetLive(
	ctx context.Context, activityID, applicantID string,
) (*entity.Application, error) {
	result := &entity.Application{}
	err := xcontext.DB(ctx).
		Where("activity_id=? AND applicant_id=?", activityID, applicantID).
		Where("status IN (?)", []entity.ApplicationStatus{
			entity.ApplicationPending, entity.ApplicationAccepted,
		}).
		Take(result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateStatus applies the same status and updated_at to both sides of the
// mirror. The caller must hold a transaction.
func (r *applicationRepository) UpdateStatus(
	ctx context.Context, id string, status entity.ApplicationStatus, extra map[string]any,
) error {
	fields := map[string]any{
		"status":     status,
		"updated_at": time.Now(),
	}
	for k, v := range extra {
		fields[k] = v
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Application{}).
		Where("id=?", id).
		Updates(fields)
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	tx = xcontext.DB(ctx).
		Model(&entity.MemberApplication{}).
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

func (r *applicationRepository) GetListForActivity(
	ctx context.Context, activityID string, status entity.ApplicationStatus,
) ([]entity.Application, error) {
	result := []entity.Application{}
	tx := xcontext.DB(ctx).
		Where("activity_id=?", activityID).
		Order("updated_at DESC")

	if status != "" {
		tx = tx.Where("status=?", status)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *applicationRepository) GetListForMember(
	ctx context.Context, memberID string, status entity.ApplicationStatus,
) ([]entity.MemberApplication, error) {
	result := []entity.MemberApplication{}
	tx := xcontext.DB(ctx).
		Where("member_id=?", memberID).
		Order("updated_at DESC")

	if status != "" {
		tx = tx.Where("status=?", status)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *applicationRepository) CountPendingForOrganization(
	ctx context.Context, organizationID string,
) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Application{}).
		Joins("JOIN activities ON activities.id = applications.activity_id").
		Where("activities.organization_id=?", organizationID).
		Where("applications.status=?", entity.ApplicationPending).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
