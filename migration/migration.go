package migration

import (
	"context"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/pkg/xcontext"
)

// Migrate brings the schema up to date for every table, including the unique
// (activity_id, user_id) index the validation ledger relies on.
func Migrate(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.Member{},
		&entity.Organization{},
		&entity.Activity{},
		&entity.Application{},
		&entity.MemberApplication{},
		&entity.Validation{},
		&entity.BadgeCategory{},
		&entity.Badge{},
		&entity.MemberBadge{},
		&entity.Notification{},
		&entity.XpHistoryEntry{},
	)
}
