package repository

import (
	"context"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	GetByID(ctx context.Context, id string) (*entity.Member, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.Member, error)
	IncreaseXP(ctx context.Context, id string, delta int) error
	CountReferrals(ctx context.Context, referrerID string) (int64, error)
	CountAcceptedReferrals(ctx context.Context, referrerID string) (int64, error)
}

type memberRepository struct{}

func NewMemberRepository() MemberRepository {
	return &memberRepository{}
}

func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	return xcontext.DB(ctx).Create(member).Error
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	result := &entity.Member{}
	if err := xcontext.DB(ctx).Take(result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *memberRepository) GetByReferralCode(ctx context.Context, code string) (*entity.Member, error) {
	result := &entity.Member{}
	if err := xcontext.DB(ctx).Take(result, "referral_code=?", code).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *memberRepository) IncreaseXP(ctx context.Context, id string, delta int) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("id=?", id).
		Update("xp", gorm.Expr("xp+?", delta))
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *memberRepository) CountReferrals(ctx context.Context, referrerID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("referred_by=?", referrerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

// CountAcceptedReferrals counts referred members who had at least one
// application accepted. Referral badges key off this number.
func (r *memberRepository) CountAcceptedReferrals(ctx context.Context, referrerID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Joins("JOIN applications ON applications.applicant_id = members.id").
		Where("members.referred_by=?", referrerID).
		Where("applications.status=?", entity.ApplicationAccepted).
		Distinct("members.id").
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
