package repository

import (
	"context"
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetList(ctx context.Context, recipientID string, cursorID int64, limit int) ([]entity.Notification, error)
	GetLatest(ctx context.Context, recipientID string, limit int) ([]entity.Notification, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, recipientID string, id int64) error
	MarkAllRead(ctx context.Context, recipientID string) error
	ClearAll(ctx context.Context, recipientID string) error
}

type notificationRepository struct{}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	return xcontext.DB(ctx).Create(notification).Error
}

// GetList pages newest first. Snowflake ids are monotonic per recipient, so
// the id doubles as the cursor.
func (r *notificationRepository) GetList(
	ctx context.Context, recipientID string, cursorID int64, limit int,
) ([]entity.Notification, error) {
	result := []entity.Notification{}
	tx := xcontext.DB(ctx).
		Where("recipient_id=?", recipientID).
		Order("id DESC").
		Limit(limit)

	if cursorID != 0 {
		tx = tx.Where("id < ?", cursorID)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *notificationRepository) GetLatest(
	ctx context.Context, recipientID string, limit int,
) ([]entity.Notification, error) {
	return r.GetList(ctx, recipientID, 0, limit)
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("recipient_id=? AND read_at IS NULL", recipientID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// MarkRead is idempotent. Marking a notification that is already read, or one
// that does not exist for this recipient, changes nothing and returns nil.
func (r *notificationRepository) MarkRead(ctx context.Context, recipientID string, id int64) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("recipient_id=? AND id=? AND read_at IS NULL", recipientID, id).
		Update("read_at", time.Now()).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) error {
	return xcontext.DB(ctx).
		Model(&entity.Notification{}).
		Where("recipient_id=? AND read_at IS NULL", recipientID).
		Update("read_at", time.Now()).Error
}

func (r *notificationRepository) ClearAll(ctx context.Context, recipientID string) error {
	return xcontext.DB(ctx).
		Delete(&entity.Notification{}, "recipient_id=?", recipientID).Error
}
