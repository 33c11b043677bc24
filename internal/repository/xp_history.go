package repository

import (
	"context"
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

type XpHistoryRepository interface {
	Create(ctx context.Context, entry *entity.XpHistoryEntry) error
	GetList(ctx context.Context, userID string, cursorCreatedAt time.Time, cursorID string, limit int) ([]entity.XpHistoryEntry, error)
	SumPointsByUser(ctx context.Context, userID string) (int64, error)
}

type xpHistoryRepository struct{}

func NewXpHistoryRepository() XpHistoryRepository {
	return &xpHistoryRepository{}
}

func (r *xpHistoryRepository) Create(ctx context.Context, entry *entity.XpHistoryEntry) error {
	return xcontext.DB(ctx).Create(entry).Error
}

func (r *xpHistoryRepository) GetList(
	ctx context.Context, userID string, cursorCreatedAt time.Time, cursorID string, limit int,
) ([]entity.XpHistoryEntry, error) {
	result := []entity.XpHistoryEntry{}
	tx := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit)

	if !cursorCreatedAt.IsZero() {
		tx = tx.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursorCreatedAt, cursorCreatedAt, cursorID,
		)
	}

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// SumPointsByUser recomputes a member's balance from the ledger. The members
// table keeps the running total; this sum must always agree with it.
func (r *xpHistoryRepository) SumPointsByUser(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := xcontext.DB(ctx).
		Model(&entity.XpHistoryEntry{}).
		Select("COALESCE(SUM(points), 0)").
		Where("user_id=?", userID).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}

	return sum, nil
}
