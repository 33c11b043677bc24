package repository

import (
	"context"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

type ValidationRepository interface {
	Create(ctx context.Context, validation *entity.Validation) error
	Get(ctx context.Context, activityID, userID string) (*entity.Validation, error)
	GetListForActivity(ctx context.Context, activityID string) ([]entity.Validation, error)
	GetValidatedActivities(ctx context.Context, userID string) ([]entity.ValidatedActivity, error)
}

type validationRepository struct{}

func NewValidationRepository() ValidationRepository {
	return &validationRepository{}
}

// Create relies on the unique (activity_id, user_id) index for idempotency.
// A second validation of the same pair fails with gorm.ErrDuplicatedKey.
func (r *validationRepository) Create(ctx context.Context, validation *entity.Validation) error {
	return xcontext.DB(ctx).Create(validation).Error
}

func (r *validationRepository) Get(
	ctx context.Context, activityID, userID string,
) (*entity.Validation, error) {
	result := &entity.Validation{}
	err := xcontext.DB(ctx).
		Take(result, "activity_id=? AND user_id=?", activityID, userID).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *validationRepository) GetListForActivity(
	ctx context.Context, activityID string,
) ([]entity.Validation, error) {
	result := []entity.Validation{}
	err := xcontext.DB(ctx).
		Where("activity_id=?", activityID).
		Order("created_at DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetValidatedActivities projects the member's validated history joined with
// the activity attributes the reward rules match on.
func (r *validationRepository) GetValidatedActivities(
	ctx context.Context, userID string,
) ([]entity.ValidatedActivity, error) {
	result := []entity.ValidatedActivity{}
	err := xcontext.DB(ctx).
		Model(&entity.Validation{}).
		Select(
			"validations.activity_id",
			"activities.type",
			"activities.sdg",
			"validations.created_at",
		).
		Joins("JOIN activities ON activities.id = validations.activity_id").
		Where("validations.user_id=?", userID).
		Where("validations.status=?", entity.ValidationValidated).
		Order("validations.created_at ASC").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
