package domain

import (
	"testing"

	"github.com/voluntree-lab/backend/internal/entity"
	"github.com/voluntree-lab/backend/internal/model"
	"github.com/voluntree-lab/backend/internal/repository"
	"github.com/voluntree-lab/backend/pkg/errorx"
	"github.com/voluntree-lab/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_userDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{}
	memberRepo := repository.NewMemberRepository()
	notificationRepo := repository.NewNotificationRepository()
	userDomain := NewUserDomain(memberRepo, NewNotifier(notificationRepo, publisher))

	// Only admins provision members.
	ctxMember := testutil.MockContextWithUserID(ctx, testutil.Member1.ID)
	_, err := userDomain.Create(ctxMember, &model.CreateMemberRequest{
		ID:          "member3",
		DisplayName: "Member Three",
		Email:       "member3@example.com",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.PermissionDenied), err.(errorx.Error).Code)

	ctxAdmin := testutil.MockContextWithUserID(ctx, testutil.Admin1.ID)
	resp, err := userDomain.Create(ctxAdmin, &model.CreateMemberRequest{
		ID:             "member3",
		DisplayName:    "Member Three",
		Email:          "member3@example.com",
		Country:        "DE",
		ReferredByCode: testutil.Member1.ReferralCode,
	})
	require.NoError(t, err)
	require.Equal(t, "member3", resp.ID)
	require.Len(t, resp.ReferralCode, 5)

	member, err := memberRepo.GetByID(ctx, "member3")
	require.NoError(t, err)
	require.Equal(t, entity.RoleMember, member.Role)
	require.Equal(t, resp.ReferralCode, member.ReferralCode)
	require.True(t, member.ReferredBy.Valid)
	require.Equal(t, testutil.Member1.ID, member.ReferredBy.String)

	// The referrer learns their code was used, in the inbox and on the
	// live channel.
	notifications, err := notificationRepo.GetList(ctx, testutil.Member1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, entity.NotificationReferral, notifications[0].Type)
	require.Equal(t, "member3", notifications[0].Metadata["referredId"])
	require.Len(t, publisher.Published, 1)
	require.Equal(t, []byte(testutil.Member1.ID), publisher.Published[0].Key)

	// A taken id or email is a client error, not an internal one.
	_, err = userDomain.Create(ctxAdmin, &model.CreateMemberRequest{
		ID:          "member3",
		DisplayName: "Member Three Again",
		Email:       "member3-again@example.com",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)
}

func Test_userDomain_Create_validation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	publisher := &testutil.MockPublisher{}
	memberRepo := repository.NewMemberRepository()
	userDomain := NewUserDomain(
		memberRepo, NewNotifier(repository.NewNotificationRepository(), publisher))
	ctxAdmin := testutil.MockContextWithUserID(ctx, testutil.Admin1.ID)

	// Unknown referral codes are rejected before anything is written.
	_, err := userDomain.Create(ctxAdmin, &model.CreateMemberRequest{
		ID:             "member3",
		DisplayName:    "Member Three",
		Email:          "member3@example.com",
		ReferredByCode: "ZZZZZ",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)
	_, err = memberRepo.GetByID(ctx, "member3")
	require.Error(t, err)

	_, err = userDomain.Create(ctxAdmin, &model.CreateMemberRequest{
		ID:          "member3",
		DisplayName: "Member Three",
		Email:       "member3@example.com",
		Role:        "superuser",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)

	// Staff members must belong to an organization.
	_, err = userDomain.Create(ctxAdmin, &model.CreateMemberRequest{
		ID:          "staff3",
		DisplayName: "Staff Three",
		Email:       "staff3@example.com",
		Role:        "npo_staff",
	})
	require.Error(t, err)
	require.Equal(t, uint64(errorx.BadRequest), err.(errorx.Error).Code)

	resp, err := userDomain.Create(ctxAdmin, &model.CreateMemberRequest{
		ID:             "staff3",
		DisplayName:    "Staff Three",
		Email:          "staff3@example.com",
		Role:           "npo_staff",
		OrganizationID: testutil.Organization1.ID,
	})
	require.NoError(t, err)

	staff, err := memberRepo.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RoleNpoStaff, staff.Role)
	require.True(t, staff.OrganizationID.Valid)
	require.Equal(t, testutil.Organization1.ID, staff.OrganizationID.String)
	require.Empty(t, publisher.Published)
}
