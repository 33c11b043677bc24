package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/repository"
)

var (
	Member1 = entity.Member{
		Base:         entity.Base{ID: "member1"},
		DisplayName:  "Ada",
		Email:        "ada@example.com",
		Country:      "PT",
		Role:         entity.RoleMember,
		ReferralCode: "AAAAA",
	}

	Member2 = entity.Member{
		Base:         entity.Base{ID: "member2"},
		DisplayName:  "Grace",
		Email:        "grace@example.com",
		Country:      "DE",
		Role:         entity.RoleMember,
		ReferralCode: "BBBBB",
		ReferredBy:   sql.NullString{Valid: true, String: "member1"},
	}

	NpoStaff1 = entity.Member{
		Base:           entity.Base{ID: "staff1"},
		DisplayName:    "Sol",
		Email:          "sol@npo.example.com",
		Role:           entity.RoleNpoStaff,
		OrganizationID: sql.NullString{Valid: true, String: "org1"},
		ReferralCode:   "CCCCC",
	}

	NpoStaff2 = entity.Member{
		Base:           entity.Base{ID: "staff2"},
		DisplayName:    "Kim",
		Email:          "kim@other.example.com",
		Role:           entity.RoleNpoStaff,
		OrganizationID: sql.NullString{Valid: true, String: "org2"},
		ReferralCode:   "DDDDD",
	}

	Admin1 = entity.Member{
		Base:         entity.Base{ID: "admin1"},
		DisplayName:  "Root",
		Email:        "root@example.com",
		Role:         entity.RoleAdmin,
		ReferralCode: "EEEEE",
	}

	Organization1 = entity.Organization{
		Base:    entity.Base{ID: "org1"},
		Name:    "Ocean Cleanup Org",
		Country: "PT",
		SDGs:    entity.Array[int]{14},
	}

	Organization2 = entity.Organization{
		Base:    entity.Base{ID: "org2"},
		Name:    "Forest Keepers",
		Country: "DE",
		SDGs:    entity.Array[int]{15},
	}

	// LocalActivity1 is open with a known token so redemption tests can
	// scan it directly.
	LocalActivity1 = entity.Activity{
		Base:            entity.Base{ID: "activity1", CreatedAt: time.Now().Add(-2 * time.Hour)},
		OrganizationID:  "org1",
		CreatorID:       "staff1",
		Type:            entity.ActivityLocal,
		Category:        "beach-cleanup",
		Title:           "Beach Cleanup",
		Frequency:       entity.FrequencyOnce,
		Country:         "PT",
		SDG:             14,
		XpReward:        20,
		Status:          entity.ActivityOpen,
		StartDate:       time.Now().Add(-time.Hour),
		QrToken:         sql.NullString{Valid: true, String: "fixture-token-1"},
		QrTokenIssuedAt: sql.NullTime{Valid: true, Time: time.Now().Add(-time.Hour)},
	}

	EventActivity1 = entity.Activity{
		Base:            entity.Base{ID: "activity2", CreatedAt: time.Now().Add(-time.Hour)},
		OrganizationID:  "org1",
		CreatorID:       "staff1",
		Type:            entity.ActivityEvent,
		Category:        "tree-planting",
		Title:           "Tree Planting Day",
		Frequency:       entity.FrequencyOnce,
		Country:         "PT",
		SDG:             15,
		XpReward:        10,
		Status:          entity.ActivityOpen,
		StartDate:       time.Now(),
		QrToken:         sql.NullString{Valid: true, String: "fixture-token-2"},
		QrTokenIssuedAt: sql.NullTime{Valid: true, Time: time.Now()},
	}

	DraftActivity1 = entity.Activity{
		Base:           entity.Base{ID: "activity3", CreatedAt: time.Now()},
		OrganizationID: "org1",
		CreatorID:      "staff1",
		Type:           entity.ActivityLocal,
		Category:       "food-bank",
		Title:          "Food Bank Shift",
		Frequency:      entity.FrequencyRole,
		Country:        "PT",
		SDG:            2,
		XpReward:       15,
		Status:         entity.ActivityDraft,
		StartDate:      time.Now().Add(24 * time.Hour),
	}

	BadgeCategory1 = entity.BadgeCategory{
		Base:  entity.Base{ID: "category1"},
		Title: "Participation",
	}

	// FiveValidationsBadge unlocks on the fifth validated activity.
	FiveValidationsBadge = entity.Badge{
		ID:         "five-activities",
		CategoryID: "category1",
		Title:      "Five Activities",
		XP:         50,
		RuleType:   entity.RuleCount,
		RuleData:   entity.Map{"count": 5},
	}

	FirstValidationBadge = entity.Badge{
		ID:         "first-steps",
		CategoryID: "category1",
		Title:      "First Steps",
		XP:         5,
		RuleType:   entity.RuleMilestone,
		RuleData:   entity.Map{"first_validation": true},
	}
)

// CreateFixtureDb seeds the mock database with the baseline members,
// organizations, and activities most suites start from.
func CreateFixtureDb(ctx context.Context) {
	insertMembers(ctx)
	insertOrganizations(ctx)
	insertActivities(ctx)
}

func insertMembers(ctx context.Context) {
	memberRepo := repository.NewMemberRepository()
	for _, member := range []entity.Member{Member1, Member2, NpoStaff1, NpoStaff2, Admin1} {
		member := member
		if err := memberRepo.Create(ctx, &member); err != nil {
			panic(err)
		}
	}
}

func insertOrganizations(ctx context.Context) {
	orgRepo := repository.NewOrganizationRepository()
	for _, org := range []entity.Organization{Organization1, Organization2} {
		org := org
		if err := orgRepo.Create(ctx, &org); err != nil {
			panic(err)
		}
	}
}

func insertActivities(ctx context.Context) {
	activityRepo := repository.NewActivityRepository()
	for _, activity := range []entity.Activity{LocalActivity1, EventActivity1, DraftActivity1} {
		activity := activity
		if err := activityRepo.Create(ctx, &activity); err != nil {
			panic(err)
		}
	}
}

func InsertBadgeFixtures(ctx context.Context) {
	badgeRepo := repository.NewBadgeRepository()

	category := BadgeCategory1
	if err := badgeRepo.CreateCategory(ctx, &category); err != nil {
		panic(err)
	}

	for _, badge := range []entity.Badge{FiveValidationsBadge, FirstValidationBadge} {
		badge := badge
		if err := badgeRepo.Create(ctx, &badge); err != nil {
			panic(err)
		}
	}
}
