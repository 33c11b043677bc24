package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_validationRepository_Create_uniquePair(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	validationRepo := repository.NewValidationRepository()
	now := time.Now()

	err := validationRepo.Create(ctx, &entity.Validation{
		Base:        entity.Base{ID: "validation1"},
		ActivityID:  testutil.LocalActivity1.ID,
		UserID:      testutil.Member1.ID,
		Status:      entity.ValidationValidated,
		Source:      entity.SourceQR,
		ValidatedBy: testutil.Member1.ID,
		ValidatedAt: sql.NullTime{Valid: true, Time: now},
	})
	require.NoError(t, err)

	// The unique (activity_id, user_id) index rejects a second row for the
	// same pair, regardless of its id.
	err = validationRepo.Create(ctx, &entity.Validation{
		Base:        entity.Base{ID: "validation2"},
		ActivityID:  testutil.LocalActivity1.ID,
		UserID:      testutil.Member1.ID,
		Status:      entity.ValidationValidated,
		Source:      entity.SourceQR,
		ValidatedBy: testutil.Member1.ID,
		ValidatedAt: sql.NullTime{Valid: true, Time: now},
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// Same member on another activity and another member on the same
	// activity both pass.
	err = validationRepo.Create(ctx, &entity.Validation{
		Base:        entity.Base{ID: "validation3"},
		ActivityID:  testutil.EventActivity1.ID,
		UserID:      testutil.Member1.ID,
		Status:      entity.ValidationValidated,
		Source:      entity.SourceQR,
		ValidatedBy: testutil.Member1.ID,
		ValidatedAt: sql.NullTime{Valid: true, Time: now},
	})
	require.NoError(t, err)

	err = validationRepo.Create(ctx, &entity.Validation{
		Base:        entity.Base{ID: "validation4"},
		ActivityID:  testutil.LocalActivity1.ID,
		UserID:      testutil.Member2.ID,
		Status:      entity.ValidationValidated,
		Source:      entity.SourceQR,
		ValidatedBy: testutil.Member2.ID,
		ValidatedAt: sql.NullTime{Valid: true, Time: now},
	})
	require.NoError(t, err)
}
